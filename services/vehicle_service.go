package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"autocare_portal_go/models"

	"gorm.io/gorm"
)

const (
	// MaxVehicleImageSize caps vehicle photo uploads (5MB)
	MaxVehicleImageSize = 5 * 1024 * 1024
	// MinVehicleYear is the oldest model year accepted
	MinVehicleYear = 1900
	vinLength      = 17
)

// VehicleInput holds the editable vehicle fields
type VehicleInput struct {
	Model            string
	Color            string
	VIN              string
	LicensePlate     string
	Year             int
	RegistrationDate *time.Time
}

func (in *VehicleInput) normalize(now time.Time) error {
	in.Model = SanitizeText(in.Model, 100)
	in.Color = SanitizeText(in.Color, 50)
	in.VIN = strings.ToUpper(strings.TrimSpace(in.VIN))
	in.LicensePlate = strings.ToUpper(SanitizeText(in.LicensePlate, 20))

	if in.Model == "" || in.Color == "" || in.LicensePlate == "" {
		return fmt.Errorf("%w: model, color and license plate are required", ErrInvalidInput)
	}
	if in.Year < MinVehicleYear || in.Year > now.Year()+1 {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, MinVehicleYear, now.Year()+1)
	}
	if in.VIN != "" && len(in.VIN) != vinLength {
		return fmt.Errorf("%w: VIN must have %d characters", ErrInvalidInput, vinLength)
	}
	if in.RegistrationDate != nil && in.RegistrationDate.After(now) {
		return fmt.Errorf("%w: registration date cannot be in the future", ErrInvalidInput)
	}
	return nil
}

// ListCustomerVehicles returns the customer's vehicles, newest first
func ListCustomerVehicles(db *gorm.DB, customerID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&vehicles).Error
	return vehicles, err
}

// GetCustomerVehicle fetches a vehicle only when it belongs to the customer
func GetCustomerVehicle(db *gorm.DB, customerID, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := db.Where("id = ? AND customer_id = ?", vehicleID, customerID).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// CreateVehicle registers a vehicle for the customer
func CreateVehicle(db *gorm.DB, customerID string, in VehicleInput) (*models.Vehicle, error) {
	if err := in.normalize(time.Now()); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		CustomerID:       customerID,
		Model:            in.Model,
		Color:            in.Color,
		VIN:              in.VIN,
		LicensePlate:     in.LicensePlate,
		Year:             in.Year,
		RegistrationDate: in.RegistrationDate,
	}
	if err := db.Create(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return vehicle, nil
}

// UpdateVehicle replaces the editable fields of a customer's vehicle
func UpdateVehicle(db *gorm.DB, customerID, vehicleID string, in VehicleInput) (*models.Vehicle, error) {
	vehicle, err := GetCustomerVehicle(db, customerID, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(time.Now()); err != nil {
		return nil, err
	}

	err = db.Model(vehicle).Updates(map[string]interface{}{
		"model":             in.Model,
		"color":             in.Color,
		"vin":               in.VIN,
		"license_plate":     in.LicensePlate,
		"year":              in.Year,
		"registration_date": in.RegistrationDate,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return GetCustomerVehicle(db, customerID, vehicleID)
}

// DeleteVehicle removes a vehicle that has no open work and drops its image.
// A vehicle with pending/upcoming appointments or pending/ongoing projects is kept.
func DeleteVehicle(ctx context.Context, db *gorm.DB, store StorageProvider, customerID, vehicleID string) error {
	vehicle, err := GetCustomerVehicle(db, customerID, vehicleID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var openAppointments, openProjects int64
		if err := tx.Model(&models.Appointment{}).
			Where("vehicle_id = ? AND status IN ?", vehicleID,
				[]string{models.AppointmentStatusPending, models.AppointmentStatusUpcoming}).
			Count(&openAppointments).Error; err != nil {
			return fmt.Errorf("failed to check open work: %w", err)
		}
		if err := tx.Model(&models.Project{}).
			Where("vehicle_id = ? AND status IN ?", vehicleID,
				[]string{models.ProjectStatusPending, models.ProjectStatusOngoing}).
			Count(&openProjects).Error; err != nil {
			return fmt.Errorf("failed to check open work: %w", err)
		}
		if openAppointments > 0 || openProjects > 0 {
			return fmt.Errorf("%w: vehicle has open appointments or projects", ErrInvalidInput)
		}

		if err := tx.Delete(vehicle).Error; err != nil {
			return fmt.Errorf("failed to delete vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if vehicle.HasImage() && store != nil {
		if err := store.Delete(ctx, vehicle.ImageKey); err != nil {
			log.Printf("[WARNING] Failed to delete image for vehicle %s: %v", vehicle.ID, err)
		}
	}
	return nil
}

// AttachVehicleImage uploads a photo for the vehicle and replaces any previous one
func AttachVehicleImage(ctx context.Context, db *gorm.DB, store StorageProvider, customerID, vehicleID string, file *multipart.FileHeader) (*models.Vehicle, error) {
	if store == nil || !store.IsConfigured() {
		return nil, errors.New("storage is not configured")
	}
	vehicle, err := GetCustomerVehicle(db, customerID, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := ValidateImageUpload(file, MaxVehicleImageSize); err != nil {
		return nil, err
	}

	key := GenerateVehicleImageKey(customerID, vehicleID, file.Filename)
	result, err := store.Upload(ctx, file, key)
	if err != nil {
		return nil, err
	}

	previousKey := vehicle.ImageKey
	err = db.Model(vehicle).Updates(map[string]interface{}{
		"image_key": result.Key,
		"image_url": result.URL,
	}).Error
	if err != nil {
		_ = store.Delete(ctx, result.Key)
		return nil, fmt.Errorf("failed to save vehicle image: %w", err)
	}

	if previousKey != "" {
		if err := store.Delete(ctx, previousKey); err != nil {
			log.Printf("[WARNING] Failed to delete previous image %s: %v", previousKey, err)
		}
	}
	return GetCustomerVehicle(db, customerID, vehicleID)
}
