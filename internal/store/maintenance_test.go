package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servifix-backend/internal/domain"
)

func TestAddMaintenanceSchedule(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	schedule, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID:         customer.ID,
		ServiceDescription: "Limpieza de aires acondicionados",
		FrequencyMonths:    6,
		StartDate:          "2025-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-15", schedule.NextDueDate)
}

func TestAddMaintenanceScheduleValidation(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	_, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID: customer.ID, ServiceDescription: "Limpieza", FrequencyMonths: 4, StartDate: "2025-01-15",
	})
	assert.True(t, IsValidation(err), "frequency must be 3, 6 or 12")

	_, err = s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID: customer.ID, ServiceDescription: "Limpieza", FrequencyMonths: 6, StartDate: "15/01/2025",
	})
	assert.True(t, IsValidation(err))

	_, err = s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID: "missing", ServiceDescription: "Limpieza", FrequencyMonths: 6, StartDate: "2025-01-15",
	})
	assert.True(t, IsValidation(err))
}

func TestRunMaintenanceSweepCreatesOrder(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	_, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID:         customer.ID,
		ServiceDescription: "Limpieza de aires",
		FrequencyMonths:    3,
		StartDate:          "2025-01-01",
	})
	require.NoError(t, err)

	// Due 2025-04-01; sweeping on that day generates the order.
	created := s.RunMaintenanceSweep(time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC))
	require.Len(t, created, 1)

	order := created[0]
	assert.Equal(t, domain.OrderUnconfirmed, order.Status)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, "Mantenimiento: Limpieza de aires - María Gómez", order.Title)
	assert.Contains(t, order.IssueDescription, "Mantenimiento programado: Limpieza de aires")
	require.Len(t, order.History, 1)
	assert.Equal(t, domain.ActorSystem, order.History[0].ActorID)

	// Next due advanced one frequency period.
	schedules := s.MaintenanceSchedules()
	require.Len(t, schedules, 1)
	assert.Equal(t, "2025-07-01", schedules[0].NextDueDate)
}

func TestRunMaintenanceSweepIdempotent(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	_, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID:         customer.ID,
		ServiceDescription: "Limpieza de aires",
		FrequencyMonths:    3,
		StartDate:          "2025-01-01",
	})
	require.NoError(t, err)

	today := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	require.Len(t, s.RunMaintenanceSweep(today), 1)

	// The open generated order blocks a duplicate even though the sweep
	// advanced the due date; run far in the future to prove the guard.
	future := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	assert.Empty(t, s.RunMaintenanceSweep(future))

	// Once that order is closed the schedule fires again.
	orders := s.Orders()
	require.Len(t, orders, 1)
	_, err = s.CancelOrder("staff-1", orders[0].ID, "realizado por otra vía")
	require.NoError(t, err)
	assert.Len(t, s.RunMaintenanceSweep(future), 1)
}

func TestRunMaintenanceSweepNotDueYet(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	_, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID:         customer.ID,
		ServiceDescription: "Limpieza de aires",
		FrequencyMonths:    12,
		StartDate:          "2025-01-01",
	})
	require.NoError(t, err)

	assert.Empty(t, s.RunMaintenanceSweep(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUpdateMaintenanceScheduleNextDue(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	schedule, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID: customer.ID, ServiceDescription: "Limpieza", FrequencyMonths: 6, StartDate: "2025-01-15",
	})
	require.NoError(t, err)

	updated, err := s.UpdateMaintenanceSchedule(schedule.ID, MaintenanceInput{
		CustomerID: customer.ID, ServiceDescription: "Limpieza profunda", FrequencyMonths: 3, StartDate: "2025-01-15",
	}, "2025-05-01")
	require.NoError(t, err)
	assert.Equal(t, "Limpieza profunda", updated.ServiceDescription)
	assert.Equal(t, "2025-05-01", updated.NextDueDate)

	_, err = s.UpdateMaintenanceSchedule(schedule.ID, MaintenanceInput{
		CustomerID: customer.ID, ServiceDescription: "Limpieza", FrequencyMonths: 6, StartDate: "2025-01-15",
	}, "mal-formato")
	assert.True(t, IsValidation(err))
}

func TestDeleteMaintenanceScheduleKeepsOrders(t *testing.T) {
	s := newTestStore(t)
	customer := addTestCustomer(t, s, "María Gómez", "809-555-0001")

	schedule, err := s.AddMaintenanceSchedule(MaintenanceInput{
		CustomerID: customer.ID, ServiceDescription: "Limpieza", FrequencyMonths: 3, StartDate: "2025-01-01",
	})
	require.NoError(t, err)
	require.Len(t, s.RunMaintenanceSweep(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)), 1)

	require.NoError(t, s.DeleteMaintenanceSchedule(schedule.ID))
	assert.Empty(t, s.MaintenanceSchedules())
	assert.Len(t, s.Orders(), 1, "generated orders survive the schedule")
}
