package gcal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servifix-backend/internal/domain"
)

func testOrder() domain.ServiceOrder {
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return domain.ServiceOrder{
		Number:           "OS-0001",
		CustomerName:     "María Gómez",
		CustomerPhone:    "(809) 555-0001",
		CustomerAddress:  "Calle 2 #10, Santo Domingo",
		ApplianceType:    "Nevera",
		IssueDescription: "No enfría",
		Status:           domain.OrderPending,
		Start:            &start,
		End:              &end,
	}
}

func TestEventSummary(t *testing.T) {
	assert.Equal(t, "Nevera - María Gómez [Pendiente]", EventSummary(testOrder()))
}

func TestStatusColorID(t *testing.T) {
	assert.Equal(t, "5", StatusColorID(domain.OrderPending))
	assert.Equal(t, "10", StatusColorID(domain.OrderInProgress))
	assert.Equal(t, "9", StatusColorID(domain.OrderCompleted))
	assert.Equal(t, "11", StatusColorID(domain.OrderWarranty))
	assert.Equal(t, "8", StatusColorID("Inventado"), "unknown statuses fall back to gray")
}

func TestEventDescription(t *testing.T) {
	order := testOrder()
	order.ServiceNotes = "Se cambió el termostato"

	desc := EventDescription(order)
	assert.Contains(t, desc, "INFORMACIÓN DEL CLIENTE")
	assert.Contains(t, desc, "María Gómez")
	assert.Contains(t, desc, "https://wa.me/8095550001", "phone digits only in the WhatsApp link")
	assert.Contains(t, desc, "No enfría")
	assert.Contains(t, desc, "TRABAJO REALIZADO Y NOTAS")
	assert.Contains(t, desc, "Se cambió el termostato")
	assert.NotContains(t, desc, "Solo Chequeo")
}

func TestEventDescriptionCheckupOnly(t *testing.T) {
	order := testOrder()
	order.CheckupOnly = true
	assert.Contains(t, EventDescription(order), "Solo Chequeo")
}

func TestNilClientNoOps(t *testing.T) {
	var c *Client
	assert.False(t, c.Enabled())

	ctx := context.Background()
	id, err := c.CreateEvent(ctx, testOrder(), "cal-1")
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, c.PatchEvent(ctx, "cal-1", "evt-1", nil))
	assert.NoError(t, c.MoveEvent(ctx, "evt-1", "cal-1", "cal-2"))
	assert.NoError(t, c.DeleteEvent(ctx, "cal-1", "evt-1"))
}

func TestNewWithoutCredentials(t *testing.T) {
	c, err := New(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestEventReminders(t *testing.T) {
	r := eventReminders(nil)
	assert.True(t, r.UseDefault)

	r = eventReminders([]domain.Reminder{{Minutes: 30}, {Minutes: 60}})
	assert.False(t, r.UseDefault)
	require.Len(t, r.Overrides, 2)
	assert.Equal(t, int64(30), r.Overrides[0].Minutes)
	assert.Equal(t, "popup", r.Overrides[0].Method)
}
