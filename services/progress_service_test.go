package services

import (
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/stretchr/testify/assert"
)

func TestRecordAppointmentProgress(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	employee := createTestUser(t, db, "Employee", models.RoleEmployee)
	other := createTestUser(t, db, "Other", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	appt := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), time.Now())

	t.Run("records and notifies", func(t *testing.T) {
		update, err := RecordAppointmentProgress(db, appt.ID, employee.ID, ProgressInput{
			Stage:      "Inspection",
			Percentage: 30,
			Remarks:    "<p>Pads worn</p>",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Pads worn", update.Remarks)

		notes, _ := NewNotificationService(db).ListNotifications(customer.ID, 0)
		if assert.Len(t, notes, 1) {
			assert.Equal(t, models.NotificationTypeProgressUpdate, notes[0].Type)
			assert.Equal(t, "Inspection: 30%", notes[0].Message)
		}
	})

	t.Run("validates percentage", func(t *testing.T) {
		for _, p := range []int{-1, 101} {
			_, err := RecordAppointmentProgress(db, appt.ID, employee.ID, ProgressInput{Stage: "X", Percentage: p})
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
		_, err := RecordAppointmentProgress(db, appt.ID, employee.ID, ProgressInput{Stage: "", Percentage: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects other employees", func(t *testing.T) {
		_, err := RecordAppointmentProgress(db, appt.ID, other.ID, ProgressInput{Stage: "X", Percentage: 10})
		assert.ErrorIs(t, err, ErrNotAssigned)
	})

	t.Run("rejects completed appointment", func(t *testing.T) {
		done := createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusCompleted, strPtr(employee.ID), time.Now())
		_, err := RecordAppointmentProgress(db, done.ID, employee.ID, ProgressInput{Stage: "X", Percentage: 10})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRecordProjectProgress(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	employee := createTestUser(t, db, "Employee", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	project := createTestProject(t, db, customer.ID, vehicle.ID, models.ProjectStatusOngoing, strPtr(employee.ID))

	t.Run("mirrors percentage", func(t *testing.T) {
		_, err := RecordProjectProgress(db, project.ID, employee.ID, ProgressInput{Stage: "Bodywork", Percentage: 40})
		assert.NoError(t, err)

		reloaded, _ := GetProject(db, project.ID)
		assert.Equal(t, 40, reloaded.ProgressPercentage)
		assert.Equal(t, models.ProjectStatusOngoing, reloaded.Status)
	})

	t.Run("100 completes the project", func(t *testing.T) {
		_, err := RecordProjectProgress(db, project.ID, employee.ID, ProgressInput{Stage: "Handover", Percentage: 100})
		assert.NoError(t, err)

		reloaded, _ := GetProject(db, project.ID)
		assert.Equal(t, 100, reloaded.ProgressPercentage)
		assert.Equal(t, models.ProjectStatusCompleted, reloaded.Status)
		assert.NotNil(t, reloaded.EndDate)
	})

	t.Run("no more updates once completed", func(t *testing.T) {
		_, err := RecordProjectProgress(db, project.ID, employee.ID, ProgressInput{Stage: "Extra", Percentage: 100})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("history", func(t *testing.T) {
		history, err := ListProgressHistory(db, "project", project.ID)
		assert.NoError(t, err)
		if assert.Len(t, history, 2) {
			assert.Equal(t, "Bodywork", history[0].Stage)
			assert.Equal(t, "Employee", history[1].UpdatedBy.Name)
		}
		assert.Equal(t, 100, LatestProgress(history))
		assert.Equal(t, 70.0, AverageProgress(history))

		_, err = ListProgressHistory(db, "vehicle", project.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProgressAggregates(t *testing.T) {
	assert.Equal(t, 0, LatestProgress(nil))
	assert.Equal(t, 0.0, AverageProgress(nil))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updates := []models.ProgressUpdate{
		{Percentage: 80, CreatedAt: base.Add(2 * time.Hour)},
		{Percentage: 20, CreatedAt: base},
		{Percentage: 50, CreatedAt: base.Add(time.Hour)},
	}
	assert.Equal(t, 80, LatestProgress(updates))
	assert.Equal(t, 50.0, AverageProgress(updates))
}

func TestBuildProgressEmailFor(t *testing.T) {
	customer := models.User{Name: "Kasun", Email: "k@example.com", Language: "en"}
	update := &models.ProgressUpdate{Stage: "Painting", Percentage: 60, Remarks: "Second coat"}
	email := BuildProgressEmailFor(customer, "Body kit", update, "http://localhost:8080", "/customer/my-projects")
	assert.Equal(t, []string{"k@example.com"}, email.To)
	assert.Contains(t, email.TextBody, "Second coat")
	assert.Contains(t, email.TextBody, "http://localhost:8080/customer/my-projects")
}
