package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is a customer-owned car registered with the service center
type Vehicle struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID string `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   User   `gorm:"foreignKey:CustomerID" json:"-"`

	Model            string     `gorm:"size:100;not null" json:"model"`
	Color            string     `gorm:"size:50;not null" json:"color"`
	VIN              string     `gorm:"size:17" json:"vin"`
	LicensePlate     string     `gorm:"size:20;not null;index" json:"license_plate"`
	Year             int        `gorm:"not null" json:"year"`
	RegistrationDate *time.Time `gorm:"type:date" json:"registration_date,omitempty"`

	// Image stored through the storage provider
	ImageKey string `gorm:"size:500" json:"-"`
	ImageURL string `gorm:"size:500" json:"image_url,omitempty"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// DisplayName renders "2019 Toyota Corolla (ABC-1234)"
func (v *Vehicle) DisplayName() string {
	return fmt.Sprintf("%d %s (%s)", v.Year, v.Model, v.LicensePlate)
}

// HasImage reports whether an image has been uploaded
func (v *Vehicle) HasImage() bool {
	return v.ImageKey != ""
}
