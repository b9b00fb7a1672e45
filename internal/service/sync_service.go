package service

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/gcal"
	"servifix-backend/internal/store"
)

// SyncService pushes order changes to Google Calendar after the local
// mutation has already committed. Every push is fire-and-forget with a
// single attempt; a failure is logged and the local state stands.
type SyncService struct {
	Cal     *gcal.Client
	Store   *store.Store
	Logger  *slog.Logger
	Timeout time.Duration
}

func (s SyncService) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 15 * time.Second
}

// OrderConfirmed creates the event for a freshly confirmed order, or
// patches it when the order was synced before.
func (s SyncService) OrderConfirmed(order domain.ServiceOrder) {
	if !s.Cal.Enabled() {
		return
	}
	if order.Start == nil || order.End == nil || order.CalendarID == "" {
		s.Logger.Warn("order missing schedule, skipping calendar sync", "order", order.Number)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
		defer cancel()

		if order.GoogleSynced && order.GoogleEventID != "" {
			s.patch(ctx, order, fullPatch(order))
			return
		}
		eventID, err := s.Cal.CreateEvent(ctx, order, order.CalendarID)
		if err != nil {
			s.Logger.Warn("calendar event create failed", "order", order.Number, "err", err)
			return
		}
		s.Store.MarkOrderSynced(order.ID, eventID)
	}()
}

// OrderUpdated patches the synced event; when the calendar changed it
// moves the event first.
func (s SyncService) OrderUpdated(order domain.ServiceOrder, prevCalendarID string) {
	if !s.Cal.Enabled() || !order.GoogleSynced || order.GoogleEventID == "" || order.CalendarID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
		defer cancel()

		if prevCalendarID != "" && prevCalendarID != order.CalendarID {
			if err := s.Cal.MoveEvent(ctx, order.GoogleEventID, prevCalendarID, order.CalendarID); err != nil {
				s.Logger.Warn("calendar event move failed", "order", order.Number, "err", err)
			}
		}
		s.patch(ctx, order, fullPatch(order))
	}()
}

// OrderCancelled repaints the event rather than deleting it, keeping the
// cancelled visit visible on the technician's calendar.
func (s SyncService) OrderCancelled(order domain.ServiceOrder) {
	s.patchSummaryColor(order)
}

// OrderArchived removes the synced event. An archived order never
// reached the schedule, so nothing should remain on the calendar.
func (s SyncService) OrderArchived(order domain.ServiceOrder) {
	if !s.Cal.Enabled() || !order.GoogleSynced || order.GoogleEventID == "" || order.CalendarID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
		defer cancel()
		if err := s.Cal.DeleteEvent(ctx, order.CalendarID, order.GoogleEventID); err != nil {
			s.Logger.Warn("calendar event delete failed", "order", order.Number, "err", err)
		}
	}()
}

// OrderStatusChanged refreshes the event summary and color only.
func (s SyncService) OrderStatusChanged(order domain.ServiceOrder) {
	s.patchSummaryColor(order)
}

// OrderRemindersChanged pushes the new reminder set to the event.
func (s SyncService) OrderRemindersChanged(order domain.ServiceOrder) {
	if !s.Cal.Enabled() || !order.GoogleSynced || order.GoogleEventID == "" || order.CalendarID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
		defer cancel()

		overrides := make([]*calendar.EventReminder, 0, len(order.Reminders))
		for _, r := range order.Reminders {
			overrides = append(overrides, &calendar.EventReminder{Method: "popup", Minutes: int64(r.Minutes)})
		}
		s.patch(ctx, order, &calendar.Event{
			Reminders: &calendar.EventReminders{
				UseDefault:      len(overrides) == 0,
				Overrides:       overrides,
				ForceSendFields: []string{"UseDefault"},
			},
		})
	}()
}

func (s SyncService) patchSummaryColor(order domain.ServiceOrder) {
	if !s.Cal.Enabled() || !order.GoogleSynced || order.GoogleEventID == "" || order.CalendarID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
		defer cancel()
		s.patch(ctx, order, &calendar.Event{
			Summary: gcal.EventSummary(order),
			ColorId: gcal.StatusColorID(order.Status),
		})
	}()
}

func (s SyncService) patch(ctx context.Context, order domain.ServiceOrder, patch *calendar.Event) {
	if err := s.Cal.PatchEvent(ctx, order.CalendarID, order.GoogleEventID, patch); err != nil {
		s.Logger.Warn("calendar event patch failed", "order", order.Number, "err", err)
	}
}

func fullPatch(order domain.ServiceOrder) *calendar.Event {
	patch := &calendar.Event{
		Summary:     gcal.EventSummary(order),
		Description: gcal.EventDescription(order),
		ColorId:     gcal.StatusColorID(order.Status),
	}
	if order.Start != nil {
		patch.Start = &calendar.EventDateTime{DateTime: order.Start.Format(time.RFC3339)}
	}
	if order.End != nil {
		patch.End = &calendar.EventDateTime{DateTime: order.End.Format(time.RFC3339)}
	}
	return patch
}
