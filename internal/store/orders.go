package store

import (
	"fmt"
	"time"

	"servifix-backend/internal/domain"
)

// CreateOrderInput carries everything a new service order needs. Staff
// bookings may come with a calendar and schedule; public requests never do.
type CreateOrderInput struct {
	Start            *time.Time
	End              *time.Time
	CalendarID       string
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	CustomerEmail    string
	Latitude         *float64
	Longitude        *float64
	ApplianceType    string
	IssueDescription string
	Reminders        []domain.Reminder
}

// ConfirmOrderInput supplies the final schedule and any corrected details
// for a Por Confirmar order.
type ConfirmOrderInput struct {
	Start            time.Time
	End              time.Time
	CalendarID       string
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	ApplianceType    string
	IssueDescription string
	CheckupOnly      bool
}

// UpdateOrderInput is a partial edit; nil fields keep their value.
type UpdateOrderInput struct {
	Start            *time.Time
	End              *time.Time
	CalendarID       *string
	CustomerName     *string
	CustomerPhone    *string
	CustomerAddress  *string
	ApplianceType    *string
	IssueDescription *string
	ServiceNotes     *string
	CheckupOnly      *bool
}

// CreateOrder books a new service order on behalf of a staff member. The
// customer is resolved by phone: an existing customer is reused, a new one
// is created otherwise, and the order id is appended to the service
// history either way. The order always starts in Por Confirmar.
func (s *Store) CreateOrder(actorID string, in CreateOrderInput) (domain.ServiceOrder, error) {
	return s.createOrder(actorID, in, "Cita creada por personal interno.")
}

// CreatePublicOrder is the customer-facing variant: no calendar or slot is
// assigned and the history records the public form as actor.
func (s *Store) CreatePublicOrder(in CreateOrderInput) (domain.ServiceOrder, error) {
	in.CalendarID = ""
	in.Start = nil
	in.End = nil
	return s.createOrder(domain.ActorPublicForm, in, "Cita creada desde formulario público.")
}

func (s *Store) createOrder(actorID string, in CreateOrderInput, detail string) (domain.ServiceOrder, error) {
	if in.CustomerName == "" || in.CustomerPhone == "" {
		return domain.ServiceOrder{}, validationErrorf("customer name and phone are required")
	}
	if in.ApplianceType == "" {
		return domain.ServiceOrder{}, validationErrorf("appliance type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdByID := actorID
	if actorID == domain.ActorPublicForm {
		createdByID = ""
	}
	customer := s.resolveCustomerLocked(in, createdByID)

	now := s.now()
	s.state.LastOrderNumber++
	entry := domain.ActionLog{
		Action:    domain.ActionCreated,
		Timestamp: now,
		ActorID:   actorID,
		Details:   detail,
	}
	order := domain.ServiceOrder{
		ID:               newID(),
		Number:           fmt.Sprintf("OS-%04d", s.state.LastOrderNumber),
		Title:            in.ApplianceType + " - " + in.CustomerName,
		Start:            in.Start,
		End:              in.End,
		CalendarID:       in.CalendarID,
		CustomerID:       customer.ID,
		CustomerName:     in.CustomerName,
		CustomerPhone:    in.CustomerPhone,
		CustomerAddress:  in.CustomerAddress,
		CustomerEmail:    in.CustomerEmail,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		ApplianceType:    in.ApplianceType,
		IssueDescription: in.IssueDescription,
		Reminders:        in.Reminders,
		Status:           domain.OrderUnconfirmed,
		CreatedAt:        now,
		CreatedByID:      createdByID,
		History:          []domain.ActionLog{entry},
	}

	s.state.Orders = append(s.state.Orders, order)
	customer.ServiceHistory = append(customer.ServiceHistory, order.ID)
	s.recordAudit("service_order", order.ID, entry)
	return order, nil
}

// ConfirmOrder moves a Por Confirmar order to Pendiente with its final
// schedule. The chosen slot must not be taken by another non-cancelled
// order on that calendar.
func (s *Store) ConfirmOrder(actorID, orderID string, in ConfirmOrderInput) (domain.ServiceOrder, error) {
	if in.CalendarID == "" || in.Start.IsZero() || in.End.IsZero() {
		return domain.ServiceOrder{}, validationErrorf("schedule (start, end, calendar) is required to confirm")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(orderID)
	if order == nil {
		return domain.ServiceOrder{}, ErrNotFound
	}
	if order.Status != domain.OrderUnconfirmed {
		return domain.ServiceOrder{}, validationErrorf("order %s is not pending confirmation", order.Number)
	}
	if s.findCalendar(in.CalendarID) == nil {
		return domain.ServiceOrder{}, validationErrorf("calendar not found")
	}
	if s.slotTaken(in.CalendarID, in.Start, orderID) {
		return domain.ServiceOrder{}, validationErrorf("slot %s is already taken on that calendar", in.Start.Format("15:04"))
	}

	order.Start = &in.Start
	order.End = &in.End
	order.CalendarID = in.CalendarID
	if in.CustomerName != "" {
		order.CustomerName = in.CustomerName
	}
	if in.CustomerPhone != "" {
		order.CustomerPhone = in.CustomerPhone
	}
	if in.CustomerAddress != "" {
		order.CustomerAddress = in.CustomerAddress
	}
	if in.ApplianceType != "" {
		order.ApplianceType = in.ApplianceType
	}
	if in.IssueDescription != "" {
		order.IssueDescription = in.IssueDescription
	}
	order.CheckupOnly = in.CheckupOnly
	order.Title = order.ApplianceType + " - " + order.CustomerName
	order.Status = domain.OrderPending
	order.ConfirmedByID = actorID
	if order.CreatedByID == "" {
		order.CreatedByID = actorID
	}
	if c := s.findCustomer(order.CustomerID); c != nil && c.CreatedByID == "" {
		c.CreatedByID = actorID
	}

	entry := domain.ActionLog{Action: domain.ActionConfirmed, Timestamp: s.now(), ActorID: actorID}
	order.History = append(order.History, entry)
	s.recordAudit("service_order", order.ID, entry)
	return *order, nil
}

// UpdateOrder applies a partial edit. A change to the start time or the
// calendar is a reschedule: it bumps the counter and logs Reagendado
// instead of Editado. The returned previous calendar id lets the caller
// move the synced event when the calendar changed.
func (s *Store) UpdateOrder(actorID, orderID string, in UpdateOrderInput) (updated domain.ServiceOrder, prevCalendarID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(orderID)
	if order == nil {
		return domain.ServiceOrder{}, "", ErrNotFound
	}
	prevCalendarID = order.CalendarID

	rescheduled := false
	if in.Start != nil && order.Start != nil && !in.Start.Equal(*order.Start) {
		rescheduled = true
	}
	if in.CalendarID != nil && order.CalendarID != "" && *in.CalendarID != order.CalendarID {
		rescheduled = true
	}

	newCalendar := order.CalendarID
	if in.CalendarID != nil {
		newCalendar = *in.CalendarID
	}
	newStart := order.Start
	if in.Start != nil {
		newStart = in.Start
	}
	if (in.Start != nil || in.CalendarID != nil) && newStart != nil && newCalendar != "" {
		if s.slotTaken(newCalendar, *newStart, orderID) {
			return domain.ServiceOrder{}, "", validationErrorf("slot %s is already taken on that calendar", newStart.Format("15:04"))
		}
	}

	order.Start = newStart
	if in.End != nil {
		order.End = in.End
	}
	order.CalendarID = newCalendar
	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.CustomerPhone != nil {
		order.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerAddress != nil {
		order.CustomerAddress = *in.CustomerAddress
	}
	if in.ApplianceType != nil {
		order.ApplianceType = *in.ApplianceType
	}
	if in.IssueDescription != nil {
		order.IssueDescription = *in.IssueDescription
	}
	if in.ServiceNotes != nil {
		order.ServiceNotes = *in.ServiceNotes
	}
	if in.CheckupOnly != nil {
		order.CheckupOnly = *in.CheckupOnly
	}
	order.Title = order.ApplianceType + " - " + order.CustomerName

	action := domain.ActionEdited
	if rescheduled {
		action = domain.ActionRescheduled
		order.RescheduledCount++
	}
	entry := domain.ActionLog{Action: action, Timestamp: s.now(), ActorID: actorID}
	order.History = append(order.History, entry)
	s.recordAudit("service_order", order.ID, entry)
	return *order, prevCalendarID, nil
}

// CancelOrder marks the order Cancelado. Orders are never removed; the
// reason is mandatory and lands in the history entry.
func (s *Store) CancelOrder(actorID, orderID, reason string) (domain.ServiceOrder, error) {
	if reason == "" {
		return domain.ServiceOrder{}, validationErrorf("cancellation reason is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(orderID)
	if order == nil {
		return domain.ServiceOrder{}, ErrNotFound
	}
	if order.Status == domain.OrderCancelled || order.Status == domain.OrderNotScheduled {
		return domain.ServiceOrder{}, validationErrorf("order %s is already closed", order.Number)
	}

	order.Status = domain.OrderCancelled
	order.CancellationReason = reason
	order.CancelledByID = actorID
	entry := domain.ActionLog{
		Action:    domain.ActionCancelled,
		Timestamp: s.now(),
		ActorID:   actorID,
		Details:   "Motivo: " + reason,
	}
	order.History = append(order.History, entry)
	s.recordAudit("service_order", order.ID, entry)
	return *order, nil
}

// ArchiveOrder closes a Por Confirmar order as No Agendado: the customer
// was attended but no appointment came out of it.
func (s *Store) ArchiveOrder(orderID, attendedByID, reason string) (domain.ServiceOrder, error) {
	if attendedByID == "" || reason == "" {
		return domain.ServiceOrder{}, validationErrorf("attending staff and reason are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(orderID)
	if order == nil {
		return domain.ServiceOrder{}, ErrNotFound
	}
	if order.Status != domain.OrderUnconfirmed {
		return domain.ServiceOrder{}, validationErrorf("only Por Confirmar orders can be archived")
	}

	order.Status = domain.OrderNotScheduled
	order.AttendedByID = attendedByID
	order.ArchiveReason = reason
	entry := domain.ActionLog{
		Action:    domain.ActionStatusChanged,
		Timestamp: s.now(),
		ActorID:   attendedByID,
		Details:   "Archivado como No Agendado. Motivo: " + reason,
	}
	order.History = append(order.History, entry)
	s.recordAudit("service_order", order.ID, entry)
	return *order, nil
}

// SetOrderStatus is the quick-action transition: a direct status set with
// no other field changes.
func (s *Store) SetOrderStatus(actorID, orderID string, status domain.OrderStatus) (domain.ServiceOrder, error) {
	switch status {
	case domain.OrderUnconfirmed, domain.OrderPending, domain.OrderInProgress,
		domain.OrderCompleted, domain.OrderCancelled, domain.OrderWarranty, domain.OrderNotScheduled:
	default:
		return domain.ServiceOrder{}, validationErrorf("unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(orderID)
	if order == nil {
		return domain.ServiceOrder{}, ErrNotFound
	}
	order.Status = status
	entry := domain.ActionLog{
		Action:    domain.ActionStatusChanged,
		Timestamp: s.now(),
		ActorID:   actorID,
		Details:   "Estado cambiado a: " + string(status),
	}
	order.History = append(order.History, entry)
	s.recordAudit("service_order", order.ID, entry)
	return *order, nil
}

// SetOrderReminders replaces the reminder list.
func (s *Store) SetOrderReminders(orderID string, reminders []domain.Reminder) (domain.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(orderID)
	if order == nil {
		return domain.ServiceOrder{}, ErrNotFound
	}
	order.Reminders = reminders
	return *order, nil
}

// MarkOrderSynced records the external event linkage after a successful
// calendar create. Missing orders are ignored: the sync is best-effort
// and the order may have been cancelled meanwhile.
func (s *Store) MarkOrderSynced(orderID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order := s.findOrder(orderID); order != nil {
		order.GoogleSynced = true
		order.GoogleEventID = eventID
	}
}

// Orders returns a copy of all service orders.
func (s *Store) Orders() []domain.ServiceOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ServiceOrder(nil), s.state.Orders...)
}

// Order returns one order by id.
func (s *Store) Order(id string) (domain.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := s.findOrder(id); o != nil {
		return *o, nil
	}
	return domain.ServiceOrder{}, ErrNotFound
}
