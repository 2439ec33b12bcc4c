package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// makeFileHeader builds a multipart file header the way echo hands it to handlers
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(10 << 20)
	assert.NoError(t, err)
	return form.File["image"][0]
}

func validVehicleInput() VehicleInput {
	return VehicleInput{
		Model:        "Honda Civic",
		Color:        "Blue",
		VIN:          "1hgcm82633a004352",
		LicensePlate: "cab-1234",
		Year:         2020,
	}
}

func TestCreateVehicle(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Nimal", models.RoleCustomer)

	t.Run("normalizes and stores", func(t *testing.T) {
		vehicle, err := CreateVehicle(db, customer.ID, validVehicleInput())
		assert.NoError(t, err)
		assert.Equal(t, "CAB-1234", vehicle.LicensePlate)
		assert.Equal(t, "1HGCM82633A004352", vehicle.VIN)
		assert.Equal(t, customer.ID, vehicle.CustomerID)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		in := validVehicleInput()
		in.Model = "<b></b>"
		_, err := CreateVehicle(db, customer.ID, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects bad year and VIN", func(t *testing.T) {
		in := validVehicleInput()
		in.Year = time.Now().Year() + 2
		_, err := CreateVehicle(db, customer.ID, in)
		assert.ErrorIs(t, err, ErrInvalidInput)

		in = validVehicleInput()
		in.VIN = "SHORT"
		_, err = CreateVehicle(db, customer.ID, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects future registration date", func(t *testing.T) {
		in := validVehicleInput()
		future := time.Now().AddDate(0, 1, 0)
		in.RegistrationDate = &future
		_, err := CreateVehicle(db, customer.ID, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestVehicleOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "Owner", models.RoleCustomer)
	other := createTestUser(t, db, "Other", models.RoleCustomer)
	vehicle := createTestVehicle(t, db, owner.ID)

	_, err := GetCustomerVehicle(db, other.ID, vehicle.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := ListCustomerVehicles(db, other.ID)
	assert.NoError(t, err)
	assert.Empty(t, list)

	_, err = UpdateVehicle(db, other.ID, vehicle.ID, validVehicleInput())
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := UpdateVehicle(db, owner.ID, vehicle.ID, validVehicleInput())
	assert.NoError(t, err)
	assert.Equal(t, "Honda Civic", updated.Model)
}

func TestDeleteVehicle(t *testing.T) {
	db := setupTestDB(t)
	store := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)

	t.Run("blocked by open appointment", func(t *testing.T) {
		vehicle := createTestVehicle(t, db, customer.ID)
		createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusPending, nil, time.Now())

		err := DeleteVehicle(ctx, db, store, customer.ID, vehicle.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("deletes vehicle with closed history", func(t *testing.T) {
		vehicle := createTestVehicle(t, db, customer.ID)
		createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusCompleted, nil, time.Now())

		assert.NoError(t, DeleteVehicle(ctx, db, store, customer.ID, vehicle.ID))
		_, err := GetCustomerVehicle(db, customer.ID, vehicle.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("keeps vehicle when open work cannot be checked", func(t *testing.T) {
		failing := setupTestDB(t)
		owner := createTestUser(t, failing, "Owner", models.RoleCustomer)
		vehicle := createTestVehicle(t, failing, owner.ID)
		createTestAppointment(t, failing, owner.ID, vehicle.ID, models.AppointmentStatusPending, nil, time.Now())

		countErr := errors.New("appointments unavailable")
		err := failing.Callback().Query().Before("gorm:query").Register("test:fail_appointment_count", func(tx *gorm.DB) {
			if _, isCount := tx.Statement.Dest.(*int64); isCount && tx.Statement.Table == "appointments" {
				_ = tx.AddError(countErr)
			}
		})
		assert.NoError(t, err)

		err = DeleteVehicle(ctx, failing, store, owner.ID, vehicle.ID)
		assert.ErrorIs(t, err, countErr)
		assert.NotErrorIs(t, err, ErrInvalidInput)

		var remaining int64
		failing.Model(&models.Vehicle{}).Where("id = ?", vehicle.ID).Count(&remaining)
		assert.Equal(t, int64(1), remaining)
	})
}

func TestAttachVehicleImage(t *testing.T) {
	db := setupTestDB(t)
	store := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	customer := createTestUser(t, db, "Customer", models.RoleCustomer)
	vehicle := createTestVehicle(t, db, customer.ID)

	t.Run("stores image and replaces previous", func(t *testing.T) {
		first, err := AttachVehicleImage(ctx, db, store, customer.ID, vehicle.ID, makeFileHeader(t, "front.png", "image/png", pngBytes))
		assert.NoError(t, err)
		assert.True(t, first.HasImage())

		second, err := AttachVehicleImage(ctx, db, store, customer.ID, vehicle.ID, makeFileHeader(t, "side.jpg", "image/jpeg", jpegBytes))
		assert.NoError(t, err)
		assert.NotEqual(t, first.ImageKey, second.ImageKey)

		_, _, err = store.Get(ctx, first.ImageKey)
		assert.Error(t, err, "previous image should be removed")
	})

	t.Run("rejects non-image files", func(t *testing.T) {
		_, err := AttachVehicleImage(ctx, db, store, customer.ID, vehicle.ID, makeFileHeader(t, "notes.txt", "text/plain", []byte("hello")))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("requires storage", func(t *testing.T) {
		_, err := AttachVehicleImage(ctx, db, nil, customer.ID, vehicle.ID, makeFileHeader(t, "a.png", "image/png", pngBytes))
		assert.Error(t, err)
	})
}
