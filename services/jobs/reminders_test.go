package jobs

import (
	"testing"
	"time"

	"autocare_portal_go/config"
	"autocare_portal_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:jobs_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSendAppointmentReminders(t *testing.T) {
	db := setupJobsTestDB(t)
	cfg := &config.Config{
		AppURL:        "http://test.com",
		EmailTestMode: true,
	}

	customer := models.User{Name: "John Customer", Email: "john@customer.com", Password: "x", Role: models.RoleCustomer, Language: "en"}
	assert.NoError(t, db.Create(&customer).Error)
	employee := models.User{Name: "Jane Tech", Email: "jane@autocare.com", Password: "x", Role: models.RoleEmployee}
	assert.NoError(t, db.Create(&employee).Error)
	vehicle := models.Vehicle{CustomerID: customer.ID, Model: "Corolla", Color: "White", LicensePlate: "CAB-1", Year: 2018}
	assert.NoError(t, db.Create(&vehicle).Error)

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	newAppt := func(date time.Time, start, status string, reminded *time.Time) models.Appointment {
		apt := models.Appointment{
			CustomerID:     customer.ID,
			VehicleID:      vehicle.ID,
			EmployeeID:     &employee.ID,
			ServiceName:    "Oil change",
			Date:           date,
			StartTime:      start,
			EndTime:        "18:00",
			Status:         status,
			ReminderSentAt: reminded,
		}
		assert.NoError(t, db.Create(&apt).Error)
		return apt
	}

	tomorrow := now.AddDate(0, 0, 1)
	// 1. Tomorrow at 09:00, 25h away: reminded
	due := newAppt(tomorrow, "09:00", models.AppointmentStatusUpcoming, nil)
	// 2. Already reminded
	remindedAt := now.Add(-time.Hour)
	already := newAppt(tomorrow, "09:00", models.AppointmentStatusUpcoming, &remindedAt)
	// 3. Tomorrow at 07:00, 23h away: too soon
	tooSoon := newAppt(tomorrow, "07:00", models.AppointmentStatusUpcoming, nil)
	// 4. Three days out
	tooFar := newAppt(now.AddDate(0, 0, 3), "09:00", models.AppointmentStatusUpcoming, nil)
	// 5. Still pending assignment
	pending := newAppt(tomorrow, "10:00", models.AppointmentStatusPending, nil)

	sent := SendAppointmentReminders(db, cfg, now)
	assert.Equal(t, 1, sent)

	reload := func(id string) models.Appointment {
		var apt models.Appointment
		db.First(&apt, "id = ?", id)
		return apt
	}
	assert.NotNil(t, reload(due.ID).ReminderSentAt)
	assert.True(t, reload(already.ID).ReminderSentAt.Equal(remindedAt))
	assert.Nil(t, reload(tooSoon.ID).ReminderSentAt)
	assert.Nil(t, reload(tooFar.ID).ReminderSentAt)
	assert.Nil(t, reload(pending.ID).ReminderSentAt)

	// A second run sends nothing
	assert.Equal(t, 0, SendAppointmentReminders(db, cfg, now))
}

func TestSendAppointmentRemindersEmailFailure(t *testing.T) {
	db := setupJobsTestDB(t)
	// Not in test mode and no API key: SendEmail fails, nothing gets marked
	cfg := &config.Config{AppURL: "http://test.com"}

	customer := models.User{Name: "C", Email: "c@example.com", Password: "x", Role: models.RoleCustomer}
	assert.NoError(t, db.Create(&customer).Error)
	vehicle := models.Vehicle{CustomerID: customer.ID, Model: "Civic", Color: "Red", LicensePlate: "X", Year: 2020}
	assert.NoError(t, db.Create(&vehicle).Error)

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	apt := models.Appointment{
		CustomerID: customer.ID, VehicleID: vehicle.ID, ServiceName: "Tune-up",
		Date: now.AddDate(0, 0, 1), StartTime: "12:00", EndTime: "13:00", Status: models.AppointmentStatusUpcoming,
	}
	assert.NoError(t, db.Create(&apt).Error)

	assert.Equal(t, 0, SendAppointmentReminders(db, cfg, now))

	var reloaded models.Appointment
	db.First(&reloaded, "id = ?", apt.ID)
	assert.Nil(t, reloaded.ReminderSentAt)
}
