package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"servifix-backend/internal/domain"
)

// AuditSink receives every history entry the moment it is appended.
// Implementations must not block; the store calls it while holding its lock.
type AuditSink func(entity, entityID string, entry domain.ActionLog)

// State is the full business object graph. Everything the application
// knows lives here; Postgres snapshots and calendar sync are derived,
// best-effort views of it.
type State struct {
	Staff                  []domain.Staff                `json:"staff"`
	Customers              []domain.Customer             `json:"customers"`
	Calendars              []domain.Calendar             `json:"calendars"`
	Orders                 []domain.ServiceOrder         `json:"serviceOrders"`
	MaintenanceSchedules   []domain.MaintenanceSchedule  `json:"maintenanceSchedules"`
	Products               []domain.Product              `json:"products"`
	Invoices               []domain.Invoice              `json:"invoices"`
	Quotes                 []domain.Quote                `json:"quotes"`
	Equipment              []domain.WorkshopEquipment    `json:"workshopEquipment"`
	BankAccounts           []domain.BankAccount          `json:"bankAccounts"`
	CompanyInfo            domain.CompanyInfo            `json:"companyInfo"`
	PublicFormAvailability []domain.DailyAvailability    `json:"publicFormAvailability"`
	LastOrderNumber        int                           `json:"lastOrderNumber"`
	LastQuoteNumber        int                           `json:"lastQuoteNumber"`
}

// Store serializes every state transition through one mutex. Mutation
// methods validate first and commit only a fully consistent new state;
// a returned error means nothing changed.
type Store struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
	audit AuditSink
}

func New() *Store {
	return &Store{
		state: State{
			CompanyInfo:            domain.CompanyInfo{},
			PublicFormAvailability: DefaultWeeklyAvailability(),
		},
		now: time.Now,
	}
}

// SetAuditSink installs the best-effort audit mirror. Pass nil to disable.
func (s *Store) SetAuditSink(sink AuditSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = sink
}

func (s *Store) recordAudit(entity, entityID string, entry domain.ActionLog) {
	if s.audit != nil {
		s.audit(entity, entityID, entry)
	}
}

// Snapshot marshals the whole state under the lock.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(s.state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// Restore replaces the whole state from a snapshot taken by Snapshot.
func (s *Store) Restore(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("unmarshal state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.PublicFormAvailability == nil {
		st.PublicFormAvailability = DefaultWeeklyAvailability()
	}
	s.state = st
	return nil
}

func newID() string {
	return newIDFn()
}

func (s *Store) findOrder(id string) *domain.ServiceOrder {
	for i := range s.state.Orders {
		if s.state.Orders[i].ID == id {
			return &s.state.Orders[i]
		}
	}
	return nil
}

func (s *Store) findCustomer(id string) *domain.Customer {
	for i := range s.state.Customers {
		if s.state.Customers[i].ID == id {
			return &s.state.Customers[i]
		}
	}
	return nil
}

func (s *Store) findStaff(id string) *domain.Staff {
	for i := range s.state.Staff {
		if s.state.Staff[i].ID == id {
			return &s.state.Staff[i]
		}
	}
	return nil
}

func (s *Store) findCalendar(id string) *domain.Calendar {
	for i := range s.state.Calendars {
		if s.state.Calendars[i].ID == id {
			return &s.state.Calendars[i]
		}
	}
	return nil
}
