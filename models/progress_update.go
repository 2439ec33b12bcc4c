package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressUpdate records a stage reached on an appointment or a project.
// Exactly one of AppointmentID and ProjectID is set.
type ProgressUpdate struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	AppointmentID *string `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	ProjectID     *string `gorm:"type:uuid;index" json:"project_id,omitempty"`

	Stage      string `gorm:"size:100;not null" json:"stage"`
	Percentage int    `gorm:"not null" json:"percentage"`
	Remarks    string `gorm:"size:500" json:"remarks"`

	UpdatedByID string `gorm:"type:uuid;index;not null" json:"updated_by"`
	UpdatedBy   User   `gorm:"foreignKey:UpdatedByID" json:"-"`
}

func (p *ProgressUpdate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (ProgressUpdate) TableName() string {
	return "progress_updates"
}
