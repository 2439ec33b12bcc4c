package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"autocare_portal_go/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectInput holds the modification request form fields
type ProjectInput struct {
	VehicleID     string
	Title         string
	Description   string
	EstimatedCost string // decimal text, optional
}

// CreateProject records a PENDING modification/repair project for a customer's vehicle
func CreateProject(db *gorm.DB, customerID string, in ProjectInput) (*models.Project, error) {
	if _, err := GetCustomerVehicle(db, customerID, in.VehicleID); err != nil {
		return nil, err
	}

	title := SanitizeText(in.Title, 200)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	cost := decimal.Zero
	if raw := strings.TrimSpace(in.EstimatedCost); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("%w: estimated cost must be a non-negative amount", ErrInvalidInput)
		}
		cost = parsed.Round(2)
	}

	project := &models.Project{
		CustomerID:    customerID,
		VehicleID:     in.VehicleID,
		Title:         title,
		Description:   SanitizeText(in.Description, 2000),
		Status:        models.ProjectStatusPending,
		EstimatedCost: cost,
	}
	if err := db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return GetProject(db, project.ID)
}

// GetProject fetches a project with vehicle, customer and employee
func GetProject(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Preload("Vehicle").Preload("Customer").Preload("Employee").
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListCustomerProjects returns the customer's projects, newest first
func ListCustomerProjects(db *gorm.DB, customerID string) ([]models.Project, error) {
	var projects []models.Project
	err := db.Preload("Vehicle").Preload("Employee").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListEmployeeProjects returns the projects assigned to the employee; empty status lists all
func ListEmployeeProjects(db *gorm.DB, employeeID, status string) ([]models.Project, error) {
	var projects []models.Project
	q := db.Preload("Vehicle").Preload("Customer").Where("employee_id = ?", employeeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ListProjects returns every project for the admin board; empty status lists all
func ListProjects(db *gorm.DB, status string) ([]models.Project, error) {
	var projects []models.Project
	q := db.Preload("Vehicle").Preload("Customer").Preload("Employee")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at ASC").Find(&projects).Error
	return projects, err
}

// AssignProject starts a PENDING project with the given employee
func AssignProject(db *gorm.DB, projectID, employeeID string, now time.Time) (*models.Project, error) {
	project, err := GetProject(db, projectID)
	if err != nil {
		return nil, err
	}
	if !project.CanTransitionTo(models.ProjectStatusOngoing) {
		return nil, ErrInvalidTransition
	}
	employee, err := getActiveEmployee(db, employeeID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", project.ID, models.ProjectStatusPending).
			Updates(map[string]interface{}{
				"employee_id": employee.ID,
				"status":      models.ProjectStatusOngoing,
				"start_date":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return NewNotificationService(tx).Notify(project.CustomerID, models.NotificationTypeStatusChange,
			"Project started",
			fmt.Sprintf("%s has started work on \"%s\".", employee.Name, project.Title),
			"/customer/my-projects")
	})
	if err != nil {
		return nil, err
	}
	return GetProject(db, project.ID)
}

// UpdateProjectStatus moves an assigned project to COMPLETED or CANCELLED.
// Only the assigned employee may do it.
func UpdateProjectStatus(db *gorm.DB, projectID, employeeID, status string, now time.Time) (*models.Project, error) {
	project, err := GetProject(db, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsAssignedTo(employeeID) {
		return nil, ErrNotAssigned
	}
	if !models.IsValidProjectStatus(status) || !project.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := finishProject(tx, project, status, now); err != nil {
			return err
		}
		return NewNotificationService(tx).Notify(project.CustomerID, models.NotificationTypeStatusChange,
			"Project "+strings.ToLower(status),
			fmt.Sprintf("\"%s\" is now %s.", project.Title, strings.ToLower(status)),
			"/customer/my-projects")
	})
	if err != nil {
		return nil, err
	}
	return GetProject(db, project.ID)
}

// CancelProject lets the owning customer withdraw a PENDING or ONGOING project
func CancelProject(db *gorm.DB, projectID, customerID string, now time.Time) (*models.Project, error) {
	project, err := GetProject(db, projectID)
	if err != nil {
		return nil, err
	}
	if project.CustomerID != customerID {
		return nil, ErrNotFound
	}
	if !project.CanTransitionTo(models.ProjectStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := finishProject(tx, project, models.ProjectStatusCancelled, now); err != nil {
			return err
		}
		if project.EmployeeID == nil {
			return nil
		}
		return NewNotificationService(tx).Notify(*project.EmployeeID, models.NotificationTypeStatusChange,
			"Project cancelled",
			fmt.Sprintf("%s cancelled \"%s\".", project.Customer.Name, project.Title),
			"/employee/projects")
	})
	if err != nil {
		return nil, err
	}
	return GetProject(db, project.ID)
}

// finishProject writes a terminal status; completion pins progress to 100
func finishProject(tx *gorm.DB, project *models.Project, status string, now time.Time) error {
	updates := map[string]interface{}{
		"status":   status,
		"end_date": now,
	}
	if status == models.ProjectStatusCompleted {
		updates["progress_percentage"] = 100
	}
	return tx.Model(&models.Project{}).Where("id = ?", project.ID).Updates(updates).Error
}
