package services

import (
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBookAppointment(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	vehicle := createTestVehicle(t, db, customer.ID)
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	valid := func() BookAppointmentInput {
		return BookAppointmentInput{
			VehicleID:   vehicle.ID,
			ServiceName: "Full service",
			Date:        tomorrow,
			StartTime:   "9:30",
			EndTime:     "11:00",
			Notes:       "<i>Check</i> the brakes",
		}
	}

	t.Run("creates pending appointment", func(t *testing.T) {
		appt, err := BookAppointment(db, customer.ID, valid(), now)
		assert.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusPending, appt.Status)
		assert.Equal(t, "09:30", appt.StartTime)
		assert.Nil(t, appt.EmployeeID)
		if assert.NotNil(t, appt.Notes) {
			assert.Equal(t, "Check the brakes", *appt.Notes)
		}
		assert.Equal(t, vehicle.ID, appt.Vehicle.ID)
	})

	t.Run("same day is allowed", func(t *testing.T) {
		in := valid()
		in.Date = now
		_, err := BookAppointment(db, customer.ID, in, now)
		assert.NoError(t, err)
	})

	t.Run("rejects someone else's vehicle", func(t *testing.T) {
		other := createTestUser(t, db, "Other", models.RoleCustomer)
		_, err := BookAppointment(db, other.ID, valid(), now)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects bad times", func(t *testing.T) {
		in := valid()
		in.EndTime = "09:00"
		_, err := BookAppointment(db, customer.ID, in, now)
		assert.ErrorIs(t, err, ErrInvalidInput)

		in = valid()
		in.StartTime = "nine"
		_, err = BookAppointment(db, customer.ID, in, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects past date and empty service", func(t *testing.T) {
		in := valid()
		in.Date = now.AddDate(0, 0, -1)
		_, err := BookAppointment(db, customer.ID, in, now)
		assert.ErrorIs(t, err, ErrInvalidInput)

		in = valid()
		in.ServiceName = "  "
		_, err = BookAppointment(db, customer.ID, in, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAppointmentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	employee := createTestUser(t, db, "Ruwan", models.RoleEmployee)
	otherEmployee := createTestUser(t, db, "Saman", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	appt := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, date)

	t.Run("complete before assignment is rejected", func(t *testing.T) {
		_, err := CompleteAppointment(db, appt.ID, employee.ID, now)
		assert.ErrorIs(t, err, ErrNotAssigned)
	})

	t.Run("assign moves to upcoming and notifies", func(t *testing.T) {
		assigned, err := AssignAppointment(db, appt.ID, employee.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusUpcoming, assigned.Status)
		assert.True(t, assigned.IsAssignedTo(employee.ID))
		assert.Equal(t, "Ruwan", assigned.Employee.Name)

		count, _ := NewNotificationService(db).GetNotificationCount(customer.ID)
		assert.Equal(t, int64(1), count)
	})

	t.Run("assign twice is an invalid transition", func(t *testing.T) {
		_, err := AssignAppointment(db, appt.ID, otherEmployee.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("only the assigned employee completes", func(t *testing.T) {
		_, err := CompleteAppointment(db, appt.ID, otherEmployee.ID, now)
		assert.ErrorIs(t, err, ErrNotAssigned)

		done, err := CompleteAppointment(db, appt.ID, employee.ID, now)
		assert.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCompleted, done.Status)
		assert.NotNil(t, done.CompletedAt)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		_, err := CancelAppointment(db, appt.ID, customer.ID, now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAssignAppointmentRules(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	employee := createTestUser(t, db, "Busy", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("non-employee cannot be assigned", func(t *testing.T) {
		appt := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, date)
		_, err := AssignAppointment(db, appt.ID, customer.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("fully booked employee is rejected", func(t *testing.T) {
		for i := 0; i < MaxDailyAppointments; i++ {
			createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), date)
		}
		appt := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, date)
		_, err := AssignAppointment(db, appt.ID, employee.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)

		// A different day still has room
		nextDay := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, date.AddDate(0, 0, 1))
		_, err = AssignAppointment(db, nextDay.ID, employee.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := AssignAppointment(db, "missing", employee.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssignAppointmentRechecksCapacity(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	employee := createTestUser(t, db, "Ruwan", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < MaxDailyAppointments-1; i++ {
		createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), date)
	}
	appt := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, date)

	// Another admin fills the last slot right after the load is first counted
	filled := false
	err := db.Callback().Query().After("gorm:query").Register("test:fill_last_slot", func(tx *gorm.DB) {
		if _, isCount := tx.Statement.Dest.(*int64); !isCount || tx.Statement.Table != "appointments" || filled {
			return
		}
		filled = true
		createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), date)
	})
	require.NoError(t, err)

	_, err = AssignAppointment(db, appt.ID, employee.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Ruwan already has 5 appointments")
	assert.True(t, filled)

	load, err := CountEmployeeAppointmentsOn(db, employee.ID, date)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxDailyAppointments), load)

	unchanged, err := GetAppointment(db, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, unchanged.Status)
	assert.Nil(t, unchanged.EmployeeID)
}

func TestCancelAppointment(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	other := createTestUser(t, db, "Other", models.RoleCustomer)
	employee := createTestUser(t, db, "Employee", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	now := time.Now()

	appt := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), now.AddDate(0, 0, 2))

	_, err := CancelAppointment(db, appt.ID, other.ID, now)
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, err := CancelAppointment(db, appt.ID, customer.ID, now)
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	count, _ := NewNotificationService(db).GetNotificationCount(employee.ID)
	assert.Equal(t, int64(1), count, "assigned employee is told about the cancellation")
}

func TestAppointmentListings(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	employee := createTestUser(t, db, "Employee", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, now.AddDate(0, 0, 3))
	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), now.AddDate(0, 0, 1))
	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusCompleted, strPtr(employee.ID), now.AddDate(0, 0, -5))
	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, now.AddDate(0, 0, -2))

	all, err := ListCustomerAppointments(db, customer.ID)
	assert.NoError(t, err)
	assert.Len(t, all, 4)

	upcoming, err := ListUpcomingCustomerAppointments(db, customer.ID, now, 5)
	assert.NoError(t, err)
	if assert.Len(t, upcoming, 2) {
		assert.Equal(t, models.AppointmentStatusUpcoming, upcoming[0].Status, "soonest first")
	}

	assigned, err := ListEmployeeAppointments(db, employee.ID, "")
	assert.NoError(t, err)
	assert.Len(t, assigned, 2)

	completed, err := ListEmployeeAppointments(db, employee.ID, models.AppointmentStatusCompleted)
	assert.NoError(t, err)
	assert.Len(t, completed, 1)

	pending, err := ListPendingAppointments(db)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestListEmployeeAvailability(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	free := createTestUser(t, db, "Amal", models.RoleEmployee)
	busy := createTestUser(t, db, "Bimal", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < MaxDailyAppointments; i++ {
		createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(busy.ID), date)
	}
	// Cancelled work doesn't count
	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusCancelled, strPtr(free.ID), date)

	rows, err := ListEmployeeAvailability(db, date)
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, free.ID, rows[0].Employee.ID)
		assert.True(t, rows[0].Available)
		assert.Equal(t, int64(0), rows[0].Appointments)

		assert.Equal(t, busy.ID, rows[1].Employee.ID)
		assert.False(t, rows[1].Available)
		assert.Equal(t, int64(MaxDailyAppointments), rows[1].Appointments)
	}
}

func TestListActiveEmployees(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "Customer", models.RoleCustomer)
	createTestUser(t, db, "Zara", models.RoleEmployee)
	createTestUser(t, db, "Anura", models.RoleEmployee)
	gone := createTestUser(t, db, "Gone", models.RoleEmployee)
	assert.NoError(t, db.Model(gone).Update("is_active", false).Error)

	employees, err := ListActiveEmployees(db)
	assert.NoError(t, err)
	if assert.Len(t, employees, 2) {
		assert.Equal(t, "Anura", employees[0].Name)
		assert.Equal(t, "Zara", employees[1].Name)
	}
}

func TestBuildAppointmentStatusEmailFor(t *testing.T) {
	employee := &models.User{Name: "Ruwan"}
	appt := &models.Appointment{
		Customer:    models.User{Name: "Kasun", Email: "kasun@example.com", Language: "en"},
		Vehicle:     models.Vehicle{Model: "Corolla", Year: 2019, LicensePlate: "CAB-1"},
		Employee:    employee,
		ServiceName: "Oil change",
		Date:        time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      models.AppointmentStatusUpcoming,
	}
	email := BuildAppointmentStatusEmailFor(appt, "https://autocare.example/")
	assert.Equal(t, []string{"kasun@example.com"}, email.To)
	assert.Contains(t, email.TextBody, "https://autocare.example/customer/my-appointments")
	assert.Contains(t, email.TextBody, "Ruwan")
}
