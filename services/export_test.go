package services

import (
	"context"
	"testing"
	"time"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestGenerateCustomerWorkbook(t *testing.T) {
	assert.NoError(t, i18n.Load())
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Kasun", models.RoleCustomer)
	employee := createTestUser(t, db, "Ruwan", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)

	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), time.Now())
	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusCompleted, strPtr(employee.ID), time.Now())
	createTestProject(t, db, customer.ID, vehicle.ID, models.ProjectStatusOngoing, strPtr(employee.ID))

	buf, err := GenerateCustomerWorkbook(context.Background(), db, customer)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetAppointments, sheetProjects}, f.GetSheetList())

	label, _ := f.GetCellValue(sheetSummary, "A3")
	value, _ := f.GetCellValue(sheetSummary, "B3")
	assert.Equal(t, "Total Vehicles", label)
	assert.Equal(t, "1", value)

	rows, err := f.GetRows(sheetAppointments)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Ruwan", rows[1][5])

	projectRows, err := f.GetRows(sheetProjects)
	assert.NoError(t, err)
	if assert.Len(t, projectRows, 2) {
		assert.Equal(t, "Body kit install", projectRows[1][0])
		assert.Equal(t, "Ongoing", projectRows[1][2])
	}
}

func TestGenerateCustomerWorkbookLocalized(t *testing.T) {
	assert.NoError(t, i18n.Load())
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Kasun", models.RoleCustomer)

	ctx := i18n.WithLocale(context.Background(), "es")
	buf, err := GenerateCustomerWorkbook(ctx, db, customer)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	label, _ := f.GetCellValue(sheetSummary, "A3")
	assert.Equal(t, "Vehículos", label)
}
