package store

import (
	"fmt"
	"strings"
	"time"

	"servifix-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// maintenanceMarker is the text the sweep looks for in open orders to
// avoid generating duplicates for the same schedule.
func maintenanceMarker(serviceDescription string) string {
	return "Mantenimiento programado: " + serviceDescription
}

// MaintenanceInput is the create/edit form of a recurring service.
type MaintenanceInput struct {
	CustomerID         string
	ServiceDescription string
	FrequencyMonths    int
	StartDate          string // "2006-01-02"
}

func (in MaintenanceInput) validate() error {
	if in.CustomerID == "" || in.ServiceDescription == "" {
		return validationErrorf("customer and service description are required")
	}
	switch in.FrequencyMonths {
	case 3, 6, 12:
	default:
		return validationErrorf("frequency must be 3, 6 or 12 months")
	}
	if _, err := time.Parse(dateLayout, in.StartDate); err != nil {
		return validationErrorf("start date must be YYYY-MM-DD")
	}
	return nil
}

// AddMaintenanceSchedule registers a recurring service; the first due date
// is one frequency period after the start date.
func (s *Store) AddMaintenanceSchedule(in MaintenanceInput) (domain.MaintenanceSchedule, error) {
	if err := in.validate(); err != nil {
		return domain.MaintenanceSchedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomer(in.CustomerID) == nil {
		return domain.MaintenanceSchedule{}, validationErrorf("customer not found")
	}

	start, _ := time.Parse(dateLayout, in.StartDate)
	schedule := domain.MaintenanceSchedule{
		ID:                 newID(),
		CustomerID:         in.CustomerID,
		ServiceDescription: in.ServiceDescription,
		FrequencyMonths:    in.FrequencyMonths,
		StartDate:          in.StartDate,
		NextDueDate:        start.AddDate(0, in.FrequencyMonths, 0).Format(dateLayout),
	}
	s.state.MaintenanceSchedules = append(s.state.MaintenanceSchedules, schedule)
	return schedule, nil
}

// UpdateMaintenanceSchedule edits a schedule, including its next due date.
func (s *Store) UpdateMaintenanceSchedule(id string, in MaintenanceInput, nextDueDate string) (domain.MaintenanceSchedule, error) {
	if err := in.validate(); err != nil {
		return domain.MaintenanceSchedule{}, err
	}
	if nextDueDate != "" {
		if _, err := time.Parse(dateLayout, nextDueDate); err != nil {
			return domain.MaintenanceSchedule{}, validationErrorf("next due date must be YYYY-MM-DD")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.MaintenanceSchedules {
		if s.state.MaintenanceSchedules[i].ID != id {
			continue
		}
		sched := &s.state.MaintenanceSchedules[i]
		sched.CustomerID = in.CustomerID
		sched.ServiceDescription = in.ServiceDescription
		sched.FrequencyMonths = in.FrequencyMonths
		sched.StartDate = in.StartDate
		if nextDueDate != "" {
			sched.NextDueDate = nextDueDate
		}
		return *sched, nil
	}
	return domain.MaintenanceSchedule{}, ErrNotFound
}

// DeleteMaintenanceSchedule removes a schedule. Orders it already
// generated stay.
func (s *Store) DeleteMaintenanceSchedule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.MaintenanceSchedules[:0]
	found := false
	for _, m := range s.state.MaintenanceSchedules {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	s.state.MaintenanceSchedules = kept
	if !found {
		return ErrNotFound
	}
	return nil
}

// MaintenanceSchedules returns a copy of all schedules.
func (s *Store) MaintenanceSchedules() []domain.MaintenanceSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MaintenanceSchedule(nil), s.state.MaintenanceSchedules...)
}

// RunMaintenanceSweep generates a Por Confirmar order for every schedule
// due on or before today, then advances its next due date by the
// frequency. A schedule is skipped while the customer still has an open
// order carrying the schedule's marker text, so re-running the sweep is
// idempotent. Returns the orders it created.
func (s *Store) RunMaintenanceSweep(today time.Time) []domain.ServiceOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	todayStr := today.Format(dateLayout)
	var created []domain.ServiceOrder

	for i := range s.state.MaintenanceSchedules {
		sched := &s.state.MaintenanceSchedules[i]
		if sched.NextDueDate > todayStr {
			continue
		}
		customer := s.findCustomer(sched.CustomerID)
		if customer == nil {
			continue
		}
		if s.hasOpenMaintenanceOrderLocked(customer.ID, sched.ServiceDescription) {
			continue
		}

		now := s.now()
		s.state.LastOrderNumber++
		entry := domain.ActionLog{
			Action:    domain.ActionCreated,
			Timestamp: now,
			ActorID:   domain.ActorSystem,
			Details:   "Generado automáticamente por programa de mantenimiento.",
		}
		order := domain.ServiceOrder{
			ID:               newID(),
			Number:           fmt.Sprintf("OS-%04d", s.state.LastOrderNumber),
			Title:            "Mantenimiento: " + sched.ServiceDescription + " - " + customer.Name,
			CustomerID:       customer.ID,
			CustomerName:     customer.Name,
			CustomerPhone:    customer.Phone,
			CustomerAddress:  customer.Address,
			CustomerEmail:    customer.Email,
			Latitude:         customer.Latitude,
			Longitude:        customer.Longitude,
			ApplianceType:    "Mantenimiento: " + sched.ServiceDescription,
			IssueDescription: maintenanceMarker(sched.ServiceDescription),
			Status:           domain.OrderUnconfirmed,
			CreatedAt:        now,
			History:          []domain.ActionLog{entry},
		}
		s.state.Orders = append(s.state.Orders, order)
		customer.ServiceHistory = append(customer.ServiceHistory, order.ID)
		s.recordAudit("service_order", order.ID, entry)
		created = append(created, order)

		due, err := time.Parse(dateLayout, sched.NextDueDate)
		if err != nil {
			due = today
		}
		sched.NextDueDate = due.AddDate(0, sched.FrequencyMonths, 0).Format(dateLayout)
	}
	return created
}

func (s *Store) hasOpenMaintenanceOrderLocked(customerID, serviceDescription string) bool {
	marker := maintenanceMarker(serviceDescription)
	for _, o := range s.state.Orders {
		if o.CustomerID != customerID {
			continue
		}
		if o.Status != domain.OrderUnconfirmed && o.Status != domain.OrderPending {
			continue
		}
		if strings.Contains(o.IssueDescription, marker) {
			return true
		}
	}
	return false
}
