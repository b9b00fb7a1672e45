package store

import (
	"time"

	"servifix-backend/internal/domain"
)

// Slot is one bookable start time on a given day. Identity is the start
// time only: appointments occupy a fixed implicit hour, and the template's
// end times are advisory.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Occupied  bool   `json:"occupied"`
}

// DefaultWeeklyAvailability is the Monday-to-Friday template assigned to
// new calendars and to the public request form.
func DefaultWeeklyAvailability() []domain.DailyAvailability {
	workday := []domain.TimeSlot{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "12:00"},
		{StartTime: "13:00", EndTime: "14:00"},
		{StartTime: "15:00", EndTime: "16:00"},
		{StartTime: "17:00", EndTime: "18:00"},
	}
	days := make([]domain.DailyAvailability, 0, 7)
	for dow := 0; dow < 7; dow++ {
		day := domain.DailyAvailability{DayOfWeek: dow, Slots: nil}
		if dow >= 1 && dow <= 5 {
			day.Slots = append([]domain.TimeSlot(nil), workday...)
		}
		days = append(days, day)
	}
	return days
}

// OpenSlots lists the calendar's template slots for the given day and
// flags the ones already taken by a non-cancelled order. excludeOrderID
// skips the order being edited so a no-op reschedule stays bookable.
// Unknown calendars and non-working days yield an empty list. Slots are a
// point-in-time view; nothing reserves them.
func (s *Store) OpenSlots(calendarID string, date time.Time, excludeOrderID string) []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal := s.findCalendar(calendarID)
	if cal == nil {
		return nil
	}
	var template []domain.TimeSlot
	for _, day := range cal.Availability {
		if day.DayOfWeek == int(date.Weekday()) {
			template = day.Slots
			break
		}
	}
	if len(template) == 0 {
		return nil
	}

	occupied := s.occupiedStartTimes(calendarID, date, excludeOrderID)
	slots := make([]Slot, 0, len(template))
	for _, ts := range template {
		slots = append(slots, Slot{
			StartTime: ts.StartTime,
			EndTime:   ts.EndTime,
			Occupied:  occupied[ts.StartTime],
		})
	}
	return slots
}

// PublicFormSlots returns the public request form's template for a weekday.
// The form has no calendar behind it, so nothing is ever occupied.
func (s *Store) PublicFormSlots(date time.Time) []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, day := range s.state.PublicFormAvailability {
		if day.DayOfWeek == int(date.Weekday()) {
			slots := make([]Slot, 0, len(day.Slots))
			for _, ts := range day.Slots {
				slots = append(slots, Slot{StartTime: ts.StartTime, EndTime: ts.EndTime})
			}
			return slots
		}
	}
	return nil
}

// occupiedStartTimes collects the "HH:MM" starts of every non-cancelled
// order on the calendar whose start falls on the given day. Caller holds
// the lock.
func (s *Store) occupiedStartTimes(calendarID string, date time.Time, excludeOrderID string) map[string]bool {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	occupied := make(map[string]bool)
	for _, o := range s.state.Orders {
		if o.ID == excludeOrderID || o.CalendarID != calendarID || o.Start == nil {
			continue
		}
		if o.Status == domain.OrderCancelled {
			continue
		}
		start := o.Start.In(date.Location())
		if start.Before(dayStart) || !start.Before(dayEnd) {
			continue
		}
		occupied[start.Format("15:04")] = true
	}
	return occupied
}

// slotTaken is the booking-time collision check: exact start-timestamp
// equality against non-cancelled orders on the same calendar. A 59-minute
// order ending just before another's start does not collide; slots are a
// fixed hour by convention.
func (s *Store) slotTaken(calendarID string, start time.Time, excludeOrderID string) bool {
	for _, o := range s.state.Orders {
		if o.ID == excludeOrderID || o.CalendarID != calendarID || o.Start == nil {
			continue
		}
		if o.Status == domain.OrderCancelled {
			continue
		}
		if o.Start.Equal(start) {
			return true
		}
	}
	return false
}
