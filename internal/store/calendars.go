package store

import (
	"servifix-backend/internal/domain"
)

// AddCalendar creates a standalone calendar (not tied to new staff; those
// are created by AddStaff).
func (s *Store) AddCalendar(name, staffID string) (domain.Calendar, error) {
	if name == "" {
		return domain.Calendar{}, validationErrorf("calendar name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	calendar := domain.Calendar{
		ID:           newID(),
		Name:         name,
		StaffID:      staffID,
		Color:        randomColor(),
		Availability: DefaultWeeklyAvailability(),
		Active:       true,
	}
	s.state.Calendars = append(s.state.Calendars, calendar)
	return calendar, nil
}

// UpdateCalendar edits name, color and the active flag.
func (s *Store) UpdateCalendar(id, name, color string, active bool) (domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	calendar := s.findCalendar(id)
	if calendar == nil {
		return domain.Calendar{}, ErrNotFound
	}
	if name != "" {
		calendar.Name = name
	}
	if color != "" {
		calendar.Color = color
	}
	calendar.Active = active
	return *calendar, nil
}

// DeleteCalendar removes a calendar unless it is someone's primary
// calendar; staff must be managed first in that case.
func (s *Store) DeleteCalendar(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCalendar(id) == nil {
		return ErrNotFound
	}
	for _, m := range s.state.Staff {
		if m.CalendarID == id {
			return validationErrorf("calendar is assigned as primary to %s; manage the staff member first", m.Name)
		}
	}

	kept := s.state.Calendars[:0]
	for _, c := range s.state.Calendars {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.state.Calendars = kept
	return nil
}

// SetCalendarAvailability replaces a calendar's weekly template. Slot
// ranges within a day are taken as given; overlap hygiene is on the
// editing form.
func (s *Store) SetCalendarAvailability(id string, availability []domain.DailyAvailability) (domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	calendar := s.findCalendar(id)
	if calendar == nil {
		return domain.Calendar{}, ErrNotFound
	}
	calendar.Availability = availability
	return *calendar, nil
}

// SetPublicFormAvailability replaces the public request form's template.
func (s *Store) SetPublicFormAvailability(availability []domain.DailyAvailability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PublicFormAvailability = availability
}

// PublicFormAvailability returns the public form's weekly template.
func (s *Store) PublicFormAvailability() []domain.DailyAvailability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DailyAvailability(nil), s.state.PublicFormAvailability...)
}

// Calendars returns a copy of all calendars.
func (s *Store) Calendars() []domain.Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Calendar(nil), s.state.Calendars...)
}

// CalendarByID returns one calendar.
func (s *Store) CalendarByID(id string) (domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCalendar(id); c != nil {
		return *c, nil
	}
	return domain.Calendar{}, ErrNotFound
}
