package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status constants
const (
	AppointmentStatusPending   = "PENDING"   // Booked by the customer, awaiting assignment
	AppointmentStatusUpcoming  = "UPCOMING"  // Assigned to an employee
	AppointmentStatusCompleted = "COMPLETED" // Service done
	AppointmentStatusCancelled = "CANCELLED"
)

// appointmentTransitions lists the statuses reachable from each status
var appointmentTransitions = map[string][]string{
	AppointmentStatusPending:  {AppointmentStatusUpcoming, AppointmentStatusCancelled},
	AppointmentStatusUpcoming: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// Appointment is a single service visit booked by a customer for one vehicle
type Appointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID string  `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   User    `gorm:"foreignKey:CustomerID" json:"-"`
	VehicleID  string  `gorm:"type:uuid;index;not null" json:"vehicle_id"`
	Vehicle    Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	// Assigned employee (nil while pending)
	EmployeeID *string `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Employee   *User   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	ServiceName string    `gorm:"size:150;not null" json:"service"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	Status string  `gorm:"size:20;default:'PENDING';index" json:"status"`
	Notes  *string `gorm:"type:text" json:"notes,omitempty"`

	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// BeforeCreate hook to generate UUID and default status
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	a.Date = time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// IsValidAppointmentStatus checks if the status is valid
func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentStatusPending, AppointmentStatusUpcoming, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the appointment may move to the next status
func (a *Appointment) CanTransitionTo(next string) bool {
	for _, s := range appointmentTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsUpcoming reports whether the appointment still lies ahead (pending or assigned)
func (a *Appointment) IsUpcoming() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusUpcoming
}

// IsAssignedTo reports whether the given employee works this appointment
func (a *Appointment) IsAssignedTo(employeeID string) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

// StartsAt combines the date and the HH:MM start time (UTC)
func (a *Appointment) StartsAt() time.Time {
	t, err := ParseClock(a.StartTime)
	if err != nil {
		return a.Date
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// TimeRange renders "09:00 - 10:30"
func (a *Appointment) TimeRange() string {
	return fmt.Sprintf("%s - %s", a.StartTime, a.EndTime)
}

// ParseClock parses an HH:MM time of day
func ParseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	return t, nil
}
