package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servifix-backend/internal/domain"
)

func TestCreateOrderReusesCustomerByPhone(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName:  "María Gómez",
		CustomerPhone: "809-555-0001",
		ApplianceType: "Nevera",
	})
	require.NoError(t, err)

	// Same phone, different spelling of the name: no second customer.
	second, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName:  "Maria G.",
		CustomerPhone: "809-555-0001",
		ApplianceType: "Lavadora",
	})
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	customers := s.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, []string{first.ID, second.ID}, customers[0].ServiceHistory)
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerPhone: "809-555-0001", ApplianceType: "Nevera"})
	assert.True(t, IsValidation(err))

	_, err = s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "María", CustomerPhone: "809-555-0001"})
	assert.True(t, IsValidation(err))
}

func TestCreateOrderNumbering(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera",
	})
	require.NoError(t, err)
	second, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "B", CustomerPhone: "2", ApplianceType: "Estufa",
	})
	require.NoError(t, err)

	assert.Equal(t, "OS-0001", first.Number)
	assert.Equal(t, "OS-0002", second.Number)
	assert.Equal(t, domain.OrderUnconfirmed, first.Status)
	assert.Equal(t, "Nevera - A", first.Title)
}

func TestCreatePublicOrderStripsSchedule(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	order, err := s.CreatePublicOrder(CreateOrderInput{
		Start:         &start,
		CalendarID:    "should-be-ignored",
		CustomerName:  "María Gómez",
		CustomerPhone: "809-555-0001",
		ApplianceType: "Nevera",
	})
	require.NoError(t, err)

	assert.Nil(t, order.Start)
	assert.Empty(t, order.CalendarID)
	assert.Empty(t, order.CreatedByID)
	require.Len(t, order.History, 1)
	assert.Equal(t, domain.ActorPublicForm, order.History[0].ActorID)
}

func TestConfirmOrderRejectsTakenSlot(t *testing.T) {
	s := newTestStore(t)
	_, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	first, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera",
	})
	require.NoError(t, err)
	_, err = s.ConfirmOrder("staff-1", first.ID, ConfirmOrderInput{Start: start, End: end, CalendarID: cal.ID})
	require.NoError(t, err)

	second, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "B", CustomerPhone: "2", ApplianceType: "Estufa",
	})
	require.NoError(t, err)
	_, err = s.ConfirmOrder("staff-1", second.ID, ConfirmOrderInput{Start: start, End: end, CalendarID: cal.ID})
	assert.True(t, IsValidation(err))
}

func TestConfirmOrderBackfillsCreator(t *testing.T) {
	s := newTestStore(t)
	_, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	order, err := s.CreatePublicOrder(CreateOrderInput{
		CustomerName:  "María Gómez",
		CustomerPhone: "809-555-0001",
		ApplianceType: "Nevera",
	})
	require.NoError(t, err)

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	confirmed, err := s.ConfirmOrder("coordinator-1", order.ID, ConfirmOrderInput{
		Start: start, End: start.Add(time.Hour), CalendarID: cal.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, confirmed.Status)
	assert.Equal(t, "coordinator-1", confirmed.ConfirmedByID)
	assert.Equal(t, "coordinator-1", confirmed.CreatedByID)
	customer, err := s.Customer(confirmed.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "coordinator-1", customer.CreatedByID)
}

func TestConfirmOrderOnlyFromUnconfirmed(t *testing.T) {
	s := newTestStore(t)
	_, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	order, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera",
	})
	require.NoError(t, err)

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = s.ConfirmOrder("staff-1", order.ID, ConfirmOrderInput{Start: start, End: start.Add(time.Hour), CalendarID: cal.ID})
	require.NoError(t, err)

	_, err = s.ConfirmOrder("staff-1", order.ID, ConfirmOrderInput{Start: start, End: start.Add(time.Hour), CalendarID: cal.ID})
	assert.True(t, IsValidation(err))
}

func TestUpdateOrderRescheduleDetection(t *testing.T) {
	s := newTestStore(t)
	_, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	order, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera",
	})
	require.NoError(t, err)
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = s.ConfirmOrder("staff-1", order.ID, ConfirmOrderInput{Start: start, End: start.Add(time.Hour), CalendarID: cal.ID})
	require.NoError(t, err)

	// Plain edit: no counter bump.
	notes := "compresor revisado"
	updated, _, err := s.UpdateOrder("staff-1", order.ID, UpdateOrderInput{ServiceNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.RescheduledCount)
	assert.Equal(t, domain.ActionEdited, updated.History[len(updated.History)-1].Action)

	// Moving the start time is a reschedule.
	newStart := time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)
	updated, _, err = s.UpdateOrder("staff-1", order.ID, UpdateOrderInput{Start: &newStart, End: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.RescheduledCount)
	assert.Equal(t, domain.ActionRescheduled, updated.History[len(updated.History)-1].Action)
}

func TestUpdateOrderCalendarChangeIsReschedule(t *testing.T) {
	s := newTestStore(t)
	_, cal1 := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")
	_, cal2 := addTestTechnician(t, s, "Pedro López", "pedro@servifix.do")

	order, err := s.CreateOrder("staff-1", CreateOrderInput{
		CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera",
	})
	require.NoError(t, err)
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = s.ConfirmOrder("staff-1", order.ID, ConfirmOrderInput{Start: start, End: start.Add(time.Hour), CalendarID: cal1.ID})
	require.NoError(t, err)

	updated, prevCal, err := s.UpdateOrder("staff-1", order.ID, UpdateOrderInput{CalendarID: &cal2.ID})
	require.NoError(t, err)
	assert.Equal(t, cal1.ID, prevCal)
	assert.Equal(t, cal2.ID, updated.CalendarID)
	assert.Equal(t, 1, updated.RescheduledCount)
}

func TestUpdateOrderRejectsCollision(t *testing.T) {
	s := newTestStore(t)
	_, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	start9 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	start11 := time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC)

	first, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)
	_, err = s.ConfirmOrder("staff-1", first.ID, ConfirmOrderInput{Start: start9, End: start9.Add(time.Hour), CalendarID: cal.ID})
	require.NoError(t, err)

	second, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "B", CustomerPhone: "2", ApplianceType: "Estufa"})
	require.NoError(t, err)
	_, err = s.ConfirmOrder("staff-1", second.ID, ConfirmOrderInput{Start: start11, End: start11.Add(time.Hour), CalendarID: cal.ID})
	require.NoError(t, err)

	// Moving the second order onto the first one's slot must fail.
	_, _, err = s.UpdateOrder("staff-1", second.ID, UpdateOrderInput{Start: &start9})
	assert.True(t, IsValidation(err))
}

func TestCancelOrderRequiresReason(t *testing.T) {
	s := newTestStore(t)

	order, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)

	_, err = s.CancelOrder("staff-1", order.ID, "")
	assert.True(t, IsValidation(err))

	cancelled, err := s.CancelOrder("staff-1", order.ID, "cliente desistió")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, cancelled.Status)
	assert.Equal(t, "cliente desistió", cancelled.CancellationReason)
	assert.Contains(t, cancelled.History[len(cancelled.History)-1].Details, "cliente desistió")

	// A closed order cannot be cancelled again.
	_, err = s.CancelOrder("staff-1", order.ID, "otra vez")
	assert.True(t, IsValidation(err))
}

func TestArchiveOrderOnlyFromUnconfirmed(t *testing.T) {
	s := newTestStore(t)
	_, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	order, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)

	archived, err := s.ArchiveOrder(order.ID, "staff-2", "solo pedía información")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderNotScheduled, archived.Status)
	assert.Equal(t, "staff-2", archived.AttendedByID)

	confirmed, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "B", CustomerPhone: "2", ApplianceType: "Estufa"})
	require.NoError(t, err)
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = s.ConfirmOrder("staff-1", confirmed.ID, ConfirmOrderInput{Start: start, End: start.Add(time.Hour), CalendarID: cal.ID})
	require.NoError(t, err)

	_, err = s.ArchiveOrder(confirmed.ID, "staff-2", "no aplica")
	assert.True(t, IsValidation(err))
}

func TestSetOrderStatusValidatesEnum(t *testing.T) {
	s := newTestStore(t)

	order, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)

	_, err = s.SetOrderStatus("staff-1", order.ID, "Inventado")
	assert.True(t, IsValidation(err))

	updated, err := s.SetOrderStatus("staff-1", order.ID, domain.OrderInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderInProgress, updated.Status)
	last := updated.History[len(updated.History)-1]
	assert.Equal(t, domain.ActionStatusChanged, last.Action)
	assert.Contains(t, last.Details, string(domain.OrderInProgress))
}

func TestMarkOrderSynced(t *testing.T) {
	s := newTestStore(t)

	order, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)

	s.MarkOrderSynced(order.ID, "evt-123")
	synced, err := s.Order(order.ID)
	require.NoError(t, err)
	assert.True(t, synced.GoogleSynced)
	assert.Equal(t, "evt-123", synced.GoogleEventID)

	// Unknown order is a no-op, not a panic.
	s.MarkOrderSynced("missing", "evt-456")
}

func TestOrderAuditSink(t *testing.T) {
	s := newTestStore(t)

	var entities []string
	var actions []domain.LogAction
	s.SetAuditSink(func(entity, entityID string, entry domain.ActionLog) {
		entities = append(entities, entity)
		actions = append(actions, entry.Action)
	})

	order, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)
	_, err = s.CancelOrder("staff-1", order.ID, "motivo")
	require.NoError(t, err)

	assert.Equal(t, []string{"service_order", "service_order"}, entities)
	assert.Equal(t, []domain.LogAction{domain.ActionCreated, domain.ActionCancelled}, actions)
}
