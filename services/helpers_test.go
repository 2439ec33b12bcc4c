package services

import (
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database with every model migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := testDB.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return testDB
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    uuid.New().String()[:8] + "@autocare.test",
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func createTestVehicle(t *testing.T, db *gorm.DB, customerID string) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		CustomerID:   customerID,
		Model:        "Toyota Corolla",
		Color:        "Silver",
		LicensePlate: "CAB-" + uuid.New().String()[:4],
		Year:         2019,
	}
	assert.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func createTestAppointment(t *testing.T, db *gorm.DB, customerID, vehicleID, status string, employeeID *string, date time.Time) *models.Appointment {
	t.Helper()
	appt := &models.Appointment{
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		EmployeeID:  employeeID,
		ServiceName: "Oil change",
		Date:        date,
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      status,
	}
	assert.NoError(t, db.Create(appt).Error)
	return appt
}

func createTestProject(t *testing.T, db *gorm.DB, customerID, vehicleID, status string, employeeID *string) *models.Project {
	t.Helper()
	project := &models.Project{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		EmployeeID: employeeID,
		Title:      "Body kit install",
		Status:     status,
	}
	assert.NoError(t, db.Create(project).Error)
	return project
}

func strPtr(s string) *string {
	return &s
}
