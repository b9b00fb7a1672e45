package store

import (
	"time"

	"servifix-backend/internal/domain"
)

// EquipmentInput is the create/edit form of a workshop intake.
type EquipmentInput struct {
	CustomerID    string
	EquipmentType string
	Brand         string
	Model         string
	SerialNumber  string
	ReportedFault string
	TechnicianID  string
	EntryDate     time.Time
}

// AddEquipment registers an appliance dropped off at the workshop.
func (s *Store) AddEquipment(actorID string, in EquipmentInput) (domain.WorkshopEquipment, error) {
	if in.CustomerID == "" || in.EquipmentType == "" {
		return domain.WorkshopEquipment{}, validationErrorf("customer and equipment type are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomer(in.CustomerID) == nil {
		return domain.WorkshopEquipment{}, validationErrorf("customer not found")
	}

	entryDate := in.EntryDate
	if entryDate.IsZero() {
		entryDate = s.now()
	}
	entry := domain.ActionLog{
		Action:    domain.ActionCreated,
		Timestamp: s.now(),
		ActorID:   actorID,
		Details:   "Equipo registrado en taller.",
	}
	equipment := domain.WorkshopEquipment{
		ID:            newID(),
		EntryDate:     entryDate,
		CustomerID:    in.CustomerID,
		EquipmentType: in.EquipmentType,
		Brand:         in.Brand,
		Model:         in.Model,
		SerialNumber:  in.SerialNumber,
		ReportedFault: in.ReportedFault,
		TechnicianID:  in.TechnicianID,
		Status:        domain.EquipmentReceived,
		History:       []domain.ActionLog{entry},
	}
	s.state.Equipment = append(s.state.Equipment, equipment)
	s.recordAudit("workshop_equipment", equipment.ID, entry)
	return equipment, nil
}

// UpdateEquipment edits an intake; a status change appends an Estado
// Cambiado entry to the equipment's history.
func (s *Store) UpdateEquipment(actorID, id string, in EquipmentInput, status domain.EquipmentStatus) (domain.WorkshopEquipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Equipment {
		if s.state.Equipment[i].ID != id {
			continue
		}
		eq := &s.state.Equipment[i]
		if in.EquipmentType != "" {
			eq.EquipmentType = in.EquipmentType
		}
		eq.Brand = in.Brand
		eq.Model = in.Model
		eq.SerialNumber = in.SerialNumber
		if in.ReportedFault != "" {
			eq.ReportedFault = in.ReportedFault
		}
		eq.TechnicianID = in.TechnicianID

		if status != "" && status != eq.Status {
			eq.Status = status
			entry := domain.ActionLog{
				Action:    domain.ActionStatusChanged,
				Timestamp: s.now(),
				ActorID:   actorID,
				Details:   "Estado cambiado a: " + string(status),
			}
			eq.History = append(eq.History, entry)
			s.recordAudit("workshop_equipment", eq.ID, entry)
		}
		return *eq, nil
	}
	return domain.WorkshopEquipment{}, ErrNotFound
}

// Equipment returns a copy of all workshop intakes.
func (s *Store) Equipment() []domain.WorkshopEquipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WorkshopEquipment(nil), s.state.Equipment...)
}
