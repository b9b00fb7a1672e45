package store

import (
	"fmt"
	"math/rand"

	"servifix-backend/internal/domain"
)

// StaffInput is the create/edit form of a staff member.
type StaffInput struct {
	Name          string
	Email         string
	Role          domain.StaffRole
	PersonalPhone string
	FleetPhone    string
	IDNumber      string
}

func validRole(r domain.StaffRole) bool {
	switch r {
	case domain.RoleAdmin, domain.RoleCoordinator, domain.RoleTechnician, domain.RoleSecretary:
		return true
	}
	return false
}

// AddStaff creates a staff member together with their personal calendar
// (1:1, default weekly template, random color).
func (s *Store) AddStaff(in StaffInput) (domain.Staff, error) {
	if in.Name == "" || in.Email == "" {
		return domain.Staff{}, validationErrorf("name and email are required")
	}
	if !validRole(in.Role) {
		return domain.Staff{}, validationErrorf("unknown role %q", in.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staff := domain.Staff{
		ID:            newID(),
		Name:          in.Name,
		Email:         in.Email,
		CalendarID:    newID(),
		Role:          in.Role,
		PersonalPhone: in.PersonalPhone,
		FleetPhone:    in.FleetPhone,
		IDNumber:      in.IDNumber,
	}
	calendar := domain.Calendar{
		ID:           staff.CalendarID,
		Name:         "Agenda de " + in.Name,
		StaffID:      staff.ID,
		Color:        randomColor(),
		Availability: DefaultWeeklyAvailability(),
		Active:       true,
	}
	s.state.Staff = append(s.state.Staff, staff)
	s.state.Calendars = append(s.state.Calendars, calendar)
	return staff, nil
}

// UpdateStaff edits identity fields; role changes go through
// UpdateStaffRole so the sole-admin guard applies.
func (s *Store) UpdateStaff(id string, in StaffInput) (domain.Staff, error) {
	if in.Name == "" || in.Email == "" {
		return domain.Staff{}, validationErrorf("name and email are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staff := s.findStaff(id)
	if staff == nil {
		return domain.Staff{}, ErrNotFound
	}
	staff.Name = in.Name
	staff.Email = in.Email
	staff.PersonalPhone = in.PersonalPhone
	staff.FleetPhone = in.FleetPhone
	staff.IDNumber = in.IDNumber
	return *staff, nil
}

// UpdateStaffRole changes a role, refusing to demote the only admin.
func (s *Store) UpdateStaffRole(id string, role domain.StaffRole) (domain.Staff, error) {
	if !validRole(role) {
		return domain.Staff{}, validationErrorf("unknown role %q", role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staff := s.findStaff(id)
	if staff == nil {
		return domain.Staff{}, ErrNotFound
	}
	if staff.Role == domain.RoleAdmin && role != domain.RoleAdmin && s.adminCountLocked() == 1 {
		return domain.Staff{}, validationErrorf("cannot change the role of the only administrator")
	}
	staff.Role = role
	return *staff, nil
}

// DeleteStaff removes a staff member and their calendar. The last admin
// cannot be deleted. Orders on the removed calendar are not deleted: they
// lose their calendar and fall back to Por Confirmar for rebooking.
func (s *Store) DeleteStaff(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := s.findStaff(id)
	if staff == nil {
		return ErrNotFound
	}
	if staff.Role == domain.RoleAdmin && s.adminCountLocked() == 1 {
		return validationErrorf("cannot delete the only administrator")
	}

	calendarID := staff.CalendarID
	for i := range s.state.Orders {
		if s.state.Orders[i].CalendarID == calendarID {
			s.state.Orders[i].CalendarID = ""
			s.state.Orders[i].Status = domain.OrderUnconfirmed
		}
	}

	kept := s.state.Staff[:0]
	for _, m := range s.state.Staff {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.state.Staff = kept

	cals := s.state.Calendars[:0]
	for _, c := range s.state.Calendars {
		if c.ID != calendarID {
			cals = append(cals, c)
		}
	}
	s.state.Calendars = cals
	return nil
}

// SetAccessKeyHash stores (or clears, with "") the bcrypt hash of a staff
// member's access key.
func (s *Store) SetAccessKeyHash(staffID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := s.findStaff(staffID)
	if staff == nil {
		return ErrNotFound
	}
	staff.AccessKeyHash = hash
	return nil
}

// StaffByEmail looks a staff member up for login.
func (s *Store) StaffByEmail(email string) (domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.state.Staff {
		if m.Email == email {
			return m, nil
		}
	}
	return domain.Staff{}, ErrNotFound
}

// StaffMember returns one staff member by id.
func (s *Store) StaffMember(id string) (domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.findStaff(id); m != nil {
		return *m, nil
	}
	return domain.Staff{}, ErrNotFound
}

// StaffList returns a copy of all staff.
func (s *Store) StaffList() []domain.Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Staff(nil), s.state.Staff...)
}

func (s *Store) adminCountLocked() int {
	n := 0
	for _, m := range s.state.Staff {
		if m.Role == domain.RoleAdmin {
			n++
		}
	}
	return n
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
