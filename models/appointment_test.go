package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
		ok   bool
	}{
		{AppointmentStatusPending, AppointmentStatusUpcoming, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusUpcoming, AppointmentStatusCompleted, true},
		{AppointmentStatusUpcoming, AppointmentStatusCancelled, true},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusUpcoming, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.from}
		assert.Equal(t, tt.ok, a.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStartsAt(t *testing.T) {
	a := Appointment{
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
		EndTime:   "11:00",
	}
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), a.StartsAt())
	assert.Equal(t, "09:30 - 11:00", a.TimeRange())

	a.StartTime = "bogus"
	assert.Equal(t, a.Date, a.StartsAt())
}

func TestAppointmentAssignment(t *testing.T) {
	employeeID := "emp-1"
	a := Appointment{Status: AppointmentStatusUpcoming, EmployeeID: &employeeID}
	assert.True(t, a.IsAssignedTo("emp-1"))
	assert.False(t, a.IsAssignedTo("emp-2"))
	assert.True(t, a.IsUpcoming())

	pending := Appointment{Status: AppointmentStatusPending}
	assert.False(t, pending.IsAssignedTo("emp-1"))
}

func TestParseClock(t *testing.T) {
	_, err := ParseClock("23:59")
	assert.NoError(t, err)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected HH:MM")
}

func TestProjectTransitions(t *testing.T) {
	p := Project{Status: ProjectStatusPending}
	assert.True(t, p.CanTransitionTo(ProjectStatusOngoing))
	assert.False(t, p.CanTransitionTo(ProjectStatusCompleted))

	p.Status = ProjectStatusOngoing
	assert.True(t, p.CanTransitionTo(ProjectStatusCompleted))

	p.Status = ProjectStatusCompleted
	assert.False(t, p.CanTransitionTo(ProjectStatusOngoing))
	assert.True(t, IsValidProjectStatus(ProjectStatusCancelled))
	assert.False(t, IsValidProjectStatus("DONE"))
}

func TestUserHelpers(t *testing.T) {
	u := User{Name: "ada lovelace", Role: RoleEmployee}
	assert.Equal(t, "AL", u.Initials())
	assert.True(t, u.IsEmployee())
	assert.False(t, u.IsCustomer())

	assert.Equal(t, "?", (&User{}).Initials())

	future := time.Now().Add(time.Minute)
	u.LockoutUntil = &future
	assert.True(t, u.IsLocked(time.Now()))
	assert.False(t, u.IsLocked(future.Add(time.Second)))

	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("staff"))
}
