package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servifix-backend/internal/domain"
)

func TestAddStaffCreatesCalendar(t *testing.T) {
	s := newTestStore(t)

	staff, err := s.AddStaff(StaffInput{Name: "Juan Pérez", Email: "juan@servifix.do", Role: domain.RoleTechnician})
	require.NoError(t, err)
	require.NotEmpty(t, staff.CalendarID)

	cal, err := s.CalendarByID(staff.CalendarID)
	require.NoError(t, err)
	assert.Equal(t, "Agenda de Juan Pérez", cal.Name)
	assert.Equal(t, staff.ID, cal.StaffID)
	assert.True(t, cal.Active)
	assert.NotEmpty(t, cal.Color)
	require.Len(t, cal.Availability, 7)
	assert.Len(t, cal.Availability[1].Slots, 5)
}

func TestAddStaffValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddStaff(StaffInput{Email: "x@servifix.do", Role: domain.RoleTechnician})
	assert.True(t, IsValidation(err))

	_, err = s.AddStaff(StaffInput{Name: "X", Email: "x@servifix.do", Role: "gerente"})
	assert.True(t, IsValidation(err))
}

func TestUpdateStaffRoleLastAdminGuard(t *testing.T) {
	s := newTestStore(t)

	admin, err := s.AddStaff(StaffInput{Name: "Ana", Email: "ana@servifix.do", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = s.UpdateStaffRole(admin.ID, domain.RoleTechnician)
	assert.True(t, IsValidation(err), "the only admin cannot be demoted")

	// With a second admin the demotion goes through.
	_, err = s.AddStaff(StaffInput{Name: "Luis", Email: "luis@servifix.do", Role: domain.RoleAdmin})
	require.NoError(t, err)
	updated, err := s.UpdateStaffRole(admin.ID, domain.RoleTechnician)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, updated.Role)
}

func TestDeleteStaffLastAdminGuard(t *testing.T) {
	s := newTestStore(t)

	admin, err := s.AddStaff(StaffInput{Name: "Ana", Email: "ana@servifix.do", Role: domain.RoleAdmin})
	require.NoError(t, err)

	err = s.DeleteStaff(admin.ID)
	assert.True(t, IsValidation(err))
}

func TestDeleteStaffUnassignsOrders(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddStaff(StaffInput{Name: "Ana", Email: "ana@servifix.do", Role: domain.RoleAdmin})
	require.NoError(t, err)
	tech, cal := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	order, err := s.CreateOrder("staff-1", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", ApplianceType: "Nevera"})
	require.NoError(t, err)
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = s.ConfirmOrder("staff-1", order.ID, ConfirmOrderInput{Start: start, End: start.Add(time.Hour), CalendarID: cal.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteStaff(tech.ID))

	// Calendar gone, order back to Por Confirmar without a calendar.
	_, err = s.CalendarByID(cal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := s.Order(order.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CalendarID)
	assert.Equal(t, domain.OrderUnconfirmed, got.Status)
}

func TestSetAccessKeyHash(t *testing.T) {
	s := newTestStore(t)
	staff, _ := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	require.NoError(t, s.SetAccessKeyHash(staff.ID, "hash"))
	got, err := s.StaffMember(staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.AccessKeyHash)

	require.NoError(t, s.SetAccessKeyHash(staff.ID, ""))
	got, err = s.StaffMember(staff.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AccessKeyHash)

	assert.ErrorIs(t, s.SetAccessKeyHash("missing", "hash"), ErrNotFound)
}

func TestStaffByEmail(t *testing.T) {
	s := newTestStore(t)
	staff, _ := addTestTechnician(t, s, "Juan Pérez", "juan@servifix.do")

	got, err := s.StaffByEmail("juan@servifix.do")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, got.ID)

	_, err = s.StaffByEmail("nadie@servifix.do")
	assert.ErrorIs(t, err, ErrNotFound)
}
