// Package gcal is the one-way Google Calendar mirror for confirmed
// service orders. One order maps to at most one event; every call is a
// single best-effort attempt and the caller never blocks a local mutation
// on its outcome.
package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"servifix-backend/internal/domain"
)

// statusColorID maps order statuses to Google Calendar event colors.
var statusColorID = map[domain.OrderStatus]string{
	domain.OrderPending:      "5",  // banana yellow
	domain.OrderInProgress:   "10", // basil green
	domain.OrderCompleted:    "9",  // blueberry blue
	domain.OrderCancelled:    "8",  // graphite gray
	domain.OrderUnconfirmed:  "3",  // grape purple
	domain.OrderWarranty:     "11", // tomato red
	domain.OrderNotScheduled: "8",  // graphite gray
}

// Client wraps the calendar API. A nil Client is valid and disables sync:
// every method no-ops so callers need no configuration checks.
type Client struct {
	svc *calendar.Service
	log *slog.Logger
}

// New builds a client from a service-account credentials file. An empty
// path returns a nil client (sync disabled).
func New(ctx context.Context, credFile string, log *slog.Logger) (*Client, error) {
	if credFile == "" {
		return nil, nil
	}
	svc, err := calendar.NewService(ctx, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("init calendar service: %w", err)
	}
	return &Client{svc: svc, log: log}, nil
}

// Enabled reports whether calendar sync is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.svc != nil
}

// CreateEvent inserts an event for the order and returns the event id.
func (c *Client) CreateEvent(ctx context.Context, order domain.ServiceOrder, calendarID string) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	if order.Start == nil || order.End == nil {
		return "", fmt.Errorf("order %s has no schedule to sync", order.Number)
	}
	event := &calendar.Event{
		Summary:     EventSummary(order),
		Location:    order.CustomerAddress,
		Description: EventDescription(order),
		ColorId:     StatusColorID(order.Status),
		Start:       eventTime(*order.Start),
		End:         eventTime(*order.End),
		Reminders:   eventReminders(order.Reminders),
	}
	created, err := c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}

// PatchEvent applies a partial update to an existing event.
func (c *Client) PatchEvent(ctx context.Context, calendarID, eventID string, patch *calendar.Event) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.svc.Events.Patch(calendarID, eventID, patch).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("patch event: %w", err)
	}
	return nil
}

// MoveEvent relocates an event between calendars.
func (c *Client) MoveEvent(ctx context.Context, eventID, fromCalendarID, toCalendarID string) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.svc.Events.Move(fromCalendarID, eventID, toCalendarID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("move event: %w", err)
	}
	return nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// ListUpcomingEvents returns future events on a calendar, soonest first.
func (c *Client) ListUpcomingEvents(ctx context.Context, calendarID string) ([]*calendar.Event, error) {
	if !c.Enabled() {
		return nil, nil
	}
	resp, err := c.svc.Events.List(calendarID).
		TimeMin(time.Now().Format(time.RFC3339)).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return resp.Items, nil
}

// EventSummary is the fixed event title format.
func EventSummary(order domain.ServiceOrder) string {
	return fmt.Sprintf("%s - %s [%s]", order.ApplianceType, order.CustomerName, order.Status)
}

// StatusColorID maps a status to its display color; unknown statuses fall
// back to gray.
func StatusColorID(status domain.OrderStatus) string {
	if id, ok := statusColorID[status]; ok {
		return id
	}
	return "8"
}

// EventDescription renders the HTML body shown in the calendar event:
// customer block with a WhatsApp link, service block, then notes if any.
func EventDescription(order domain.ServiceOrder) string {
	cleanPhone := digitsOnly(order.CustomerPhone)

	var b strings.Builder
	b.WriteString("<b>-- INFORMACIÓN DEL CLIENTE --</b>\n")
	fmt.Fprintf(&b, "<b>Nombre:</b> %s\n", order.CustomerName)
	fmt.Fprintf(&b, "<b>Teléfono:</b> %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "<b>WhatsApp:</b> <a href=\"https://wa.me/%s\">https://wa.me/%s</a>\n", cleanPhone, cleanPhone)
	fmt.Fprintf(&b, "<b>Dirección:</b> %s\n\n", order.CustomerAddress)
	b.WriteString("<b>-- DETALLES DEL SERVICIO --</b>\n")
	fmt.Fprintf(&b, "<b>Servicio:</b> %s\n", order.ApplianceType)
	if order.CheckupOnly {
		b.WriteString("<b>Tipo:</b> Solo Chequeo\n")
	}
	fmt.Fprintf(&b, "<b>Falla Reportada:</b> %s\n", order.IssueDescription)
	if order.ServiceNotes != "" {
		b.WriteString("\n<b>-- TRABAJO REALIZADO Y NOTAS --</b>\n")
		b.WriteString(order.ServiceNotes)
		b.WriteString("\n")
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func eventTime(t time.Time) *calendar.EventDateTime {
	return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}
}

func eventReminders(reminders []domain.Reminder) *calendar.EventReminders {
	if len(reminders) == 0 {
		return &calendar.EventReminders{UseDefault: true}
	}
	overrides := make([]*calendar.EventReminder, 0, len(reminders))
	for _, r := range reminders {
		overrides = append(overrides, &calendar.EventReminder{Method: "popup", Minutes: int64(r.Minutes)})
	}
	return &calendar.EventReminders{
		UseDefault:      false,
		Overrides:       overrides,
		ForceSendFields: []string{"UseDefault"},
	}
}
