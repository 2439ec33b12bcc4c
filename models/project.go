package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project status constants
const (
	ProjectStatusPending   = "PENDING"
	ProjectStatusOngoing   = "ONGOING"
	ProjectStatusCompleted = "COMPLETED"
	ProjectStatusCancelled = "CANCELLED"
)

var projectTransitions = map[string][]string{
	ProjectStatusPending: {ProjectStatusOngoing, ProjectStatusCancelled},
	ProjectStatusOngoing: {ProjectStatusCompleted, ProjectStatusCancelled},
}

// Project is a multi-day modification or repair job on a customer vehicle
type Project struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID string  `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   User    `gorm:"foreignKey:CustomerID" json:"-"`
	VehicleID  string  `gorm:"type:uuid;index;not null" json:"vehicle_id"`
	Vehicle    Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	EmployeeID *string `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Employee   *User   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:'PENDING';index" json:"status"`

	// Latest reported completion, 0..100
	ProgressPercentage int             `gorm:"not null;default:0" json:"progress_percentage"`
	EstimatedCost      decimal.Decimal `gorm:"type:decimal(12,2)" json:"estimated_cost"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = ProjectStatusPending
	}
	return nil
}

func (Project) TableName() string {
	return "projects"
}

// IsValidProjectStatus checks if the status is valid
func IsValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPending, ProjectStatusOngoing, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the project may move to the next status
func (p *Project) CanTransitionTo(next string) bool {
	for _, s := range projectTransitions[p.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsAssignedTo reports whether the given employee works this project
func (p *Project) IsAssignedTo(employeeID string) bool {
	return p.EmployeeID != nil && *p.EmployeeID == employeeID
}
