package services

import (
	"fmt"
	"strings"

	"autocare_portal_go/models"

	"gorm.io/gorm"
)

// ProgressInput holds the progress form fields
type ProgressInput struct {
	Stage      string
	Percentage int
	Remarks    string
}

func (in *ProgressInput) normalize() error {
	in.Stage = SanitizeText(in.Stage, 100)
	in.Remarks = SanitizeText(in.Remarks, 500)
	if in.Stage == "" {
		return fmt.Errorf("%w: stage is required", ErrInvalidInput)
	}
	if in.Percentage < 0 || in.Percentage > 100 {
		return fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

// RecordAppointmentProgress posts an update on an UPCOMING appointment assigned to the employee
func RecordAppointmentProgress(db *gorm.DB, appointmentID, employeeID string, in ProgressInput) (*models.ProgressUpdate, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	appt, err := GetAppointment(db, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.IsAssignedTo(employeeID) {
		return nil, ErrNotAssigned
	}
	if appt.Status != models.AppointmentStatusUpcoming {
		return nil, fmt.Errorf("%w: progress can only be posted on upcoming appointments", ErrInvalidTransition)
	}

	update := &models.ProgressUpdate{
		AppointmentID: &appt.ID,
		Stage:         in.Stage,
		Percentage:    in.Percentage,
		Remarks:       in.Remarks,
		UpdatedByID:   employeeID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(update).Error; err != nil {
			return err
		}
		return NewNotificationService(tx).Notify(appt.CustomerID, models.NotificationTypeProgressUpdate,
			"Progress on "+appt.ServiceName,
			fmt.Sprintf("%s: %d%%", in.Stage, in.Percentage),
			"/customer/my-appointments")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}
	return update, nil
}

// RecordProjectProgress posts an update on an ONGOING project assigned to the employee.
// The percentage is mirrored onto the project; 100 completes it.
func RecordProjectProgress(db *gorm.DB, projectID, employeeID string, in ProgressInput) (*models.ProgressUpdate, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	project, err := GetProject(db, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsAssignedTo(employeeID) {
		return nil, ErrNotAssigned
	}
	if project.Status != models.ProjectStatusOngoing {
		return nil, fmt.Errorf("%w: progress can only be posted on ongoing projects", ErrInvalidTransition)
	}

	update := &models.ProgressUpdate{
		ProjectID:   &project.ID,
		Stage:       in.Stage,
		Percentage:  in.Percentage,
		Remarks:     in.Remarks,
		UpdatedByID: employeeID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(update).Error; err != nil {
			return err
		}

		if in.Percentage == 100 {
			if err := finishProject(tx, project, models.ProjectStatusCompleted, update.CreatedAt); err != nil {
				return err
			}
		} else if err := tx.Model(&models.Project{}).Where("id = ?", project.ID).
			Update("progress_percentage", in.Percentage).Error; err != nil {
			return err
		}

		return NewNotificationService(tx).Notify(project.CustomerID, models.NotificationTypeProgressUpdate,
			"Progress on "+project.Title,
			fmt.Sprintf("%s: %d%%", in.Stage, in.Percentage),
			"/customer/my-projects")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}
	return update, nil
}

// progressColumn maps a subject kind to its foreign key column
func progressColumn(kind string) (string, error) {
	switch kind {
	case "appointment":
		return "appointment_id", nil
	case "project":
		return "project_id", nil
	}
	return "", fmt.Errorf("%w: unknown progress subject %q", ErrInvalidInput, kind)
}

// ListProgressHistory returns the updates of an appointment or project, oldest first
func ListProgressHistory(db *gorm.DB, kind, id string) ([]models.ProgressUpdate, error) {
	column, err := progressColumn(kind)
	if err != nil {
		return nil, err
	}
	var updates []models.ProgressUpdate
	err = db.Preload("UpdatedBy").
		Where(column+" = ?", id).
		Order("created_at ASC").
		Find(&updates).Error
	return updates, err
}

// LatestProgress returns the percentage of the most recent update, 0 when there is none
func LatestProgress(updates []models.ProgressUpdate) int {
	if len(updates) == 0 {
		return 0
	}
	latest := updates[0]
	for _, u := range updates[1:] {
		if !u.CreatedAt.Before(latest.CreatedAt) {
			latest = u
		}
	}
	return latest.Percentage
}

// AverageProgress returns the mean percentage over all updates, 0 when there is none
func AverageProgress(updates []models.ProgressUpdate) float64 {
	if len(updates) == 0 {
		return 0
	}
	sum := 0
	for _, u := range updates {
		sum += u.Percentage
	}
	return float64(sum) / float64(len(updates))
}

// BuildProgressEmailFor fills the progress email for the customer behind an update
func BuildProgressEmailFor(customer models.User, subject string, update *models.ProgressUpdate, appURL, path string) *Email {
	return BuildProgressUpdateEmail(customer.Email, ProgressUpdateEmailData{
		CustomerName: customer.Name,
		Subject:      subject,
		Stage:        update.Stage,
		Percentage:   update.Percentage,
		Remarks:      update.Remarks,
		Link:         strings.TrimSuffix(appURL, "/") + path,
	}, customer.Language)
}
