package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"autocare_portal_go/models"

	"gorm.io/gorm"
)

// MaxDailyAppointments is the number of appointments an employee can take in one day
const MaxDailyAppointments = 5

// BookAppointmentInput holds the booking form fields
type BookAppointmentInput struct {
	VehicleID   string
	ServiceName string
	Date        time.Time
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Notes       string
}

// EmployeeAvailability is one row of the admin assignment picker
type EmployeeAvailability struct {
	Employee     models.User `json:"employee"`
	Appointments int64       `json:"appointments"`
	Available    bool        `json:"available"`
}

// BookAppointment creates a PENDING appointment for one of the customer's vehicles
func BookAppointment(db *gorm.DB, customerID string, in BookAppointmentInput, now time.Time) (*models.Appointment, error) {
	if _, err := GetCustomerVehicle(db, customerID, in.VehicleID); err != nil {
		return nil, err
	}

	service := SanitizeText(in.ServiceName, 150)
	if service == "" {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	start, err := models.ParseClock(in.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	end, err := models.ParseClock(in.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}
	if DayStart(in.Date).Before(DayStart(now)) {
		return nil, fmt.Errorf("%w: date cannot be in the past", ErrInvalidInput)
	}

	appt := &models.Appointment{
		CustomerID:  customerID,
		VehicleID:   in.VehicleID,
		ServiceName: service,
		Date:        DayStart(in.Date),
		StartTime:   start.Format("15:04"),
		EndTime:     end.Format("15:04"),
		Status:      models.AppointmentStatusPending,
	}
	if notes := SanitizeText(in.Notes, 1000); notes != "" {
		appt.Notes = &notes
	}

	if err := db.Create(appt).Error; err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}
	return GetAppointment(db, appt.ID)
}

// GetAppointment fetches an appointment with its vehicle, customer and employee
func GetAppointment(db *gorm.DB, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := db.Preload("Vehicle").Preload("Customer").Preload("Employee").
		First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListCustomerAppointments returns the customer's appointments, latest date first
func ListCustomerAppointments(db *gorm.DB, customerID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Vehicle").Preload("Employee").
		Where("customer_id = ?", customerID).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error
	return appointments, err
}

// ListUpcomingCustomerAppointments returns pending/upcoming appointments from today on, soonest first
func ListUpcomingCustomerAppointments(db *gorm.DB, customerID string, now time.Time, limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	q := db.Preload("Vehicle").Preload("Employee").
		Where("customer_id = ? AND status IN ? AND date >= ?", customerID,
			[]string{models.AppointmentStatusPending, models.AppointmentStatusUpcoming}, DayStart(now)).
		Order("date ASC, start_time ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&appointments).Error
	return appointments, err
}

// ListEmployeeAppointments returns the appointments assigned to the employee.
// An empty status lists every status.
func ListEmployeeAppointments(db *gorm.DB, employeeID, status string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	q := db.Preload("Vehicle").Preload("Customer").Where("employee_id = ?", employeeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("date ASC, start_time ASC").Find(&appointments).Error
	return appointments, err
}

// ListPendingAppointments returns the appointments waiting for assignment, oldest first
func ListPendingAppointments(db *gorm.DB) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Vehicle").Preload("Customer").
		Where("status = ?", models.AppointmentStatusPending).
		Order("date ASC, start_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// CountEmployeeAppointmentsOn counts the non-cancelled appointments assigned to the employee on date
func CountEmployeeAppointmentsOn(db *gorm.DB, employeeID string, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("employee_id = ? AND date = ? AND status <> ?", employeeID, DayStart(date), models.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}

// ListActiveEmployees returns the employees who can take work, by name
func ListActiveEmployees(db *gorm.DB) ([]models.User, error) {
	var employees []models.User
	err := db.Where("role = ? AND is_active = ?", models.RoleEmployee, true).
		Order("name ASC").Find(&employees).Error
	return employees, err
}

// ListEmployeeAvailability reports every active employee's load for date
func ListEmployeeAvailability(db *gorm.DB, date time.Time) ([]EmployeeAvailability, error) {
	employees, err := ListActiveEmployees(db)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeAvailability, 0, len(employees))
	for _, emp := range employees {
		count, err := CountEmployeeAppointmentsOn(db, emp.ID, date)
		if err != nil {
			return nil, err
		}
		result = append(result, EmployeeAvailability{
			Employee:     emp,
			Appointments: count,
			Available:    count < MaxDailyAppointments,
		})
	}
	return result, nil
}

func getActiveEmployee(db *gorm.DB, employeeID string) (*models.User, error) {
	var employee models.User
	err := db.Where("id = ? AND role = ? AND is_active = ?", employeeID, models.RoleEmployee, true).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: employee not found", ErrInvalidInput)
	}
	return &employee, err
}

// AssignAppointment hands a PENDING appointment to an employee with room on that day
func AssignAppointment(db *gorm.DB, appointmentID, employeeID string) (*models.Appointment, error) {
	appt, err := GetAppointment(db, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.CanTransitionTo(models.AppointmentStatusUpcoming) {
		return nil, ErrInvalidTransition
	}
	employee, err := getActiveEmployee(db, employeeID)
	if err != nil {
		return nil, err
	}

	count, err := CountEmployeeAppointmentsOn(db, employee.ID, appt.Date)
	if err != nil {
		return nil, err
	}
	if count >= MaxDailyAppointments {
		return nil, capacityError(employee, count)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// The load is re-counted in the UPDATE itself so concurrent assignments cannot overbook.
		load := tx.Session(&gorm.Session{NewDB: true}).Model(&models.Appointment{}).
			Select("COUNT(*)").
			Where("employee_id = ? AND date = ? AND status <> ?", employee.ID, DayStart(appt.Date), models.AppointmentStatusCancelled)
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", appt.ID, models.AppointmentStatusPending).
			Where("(?) < ?", load, MaxDailyAppointments).
			Updates(map[string]interface{}{
				"employee_id": employee.ID,
				"status":      models.AppointmentStatusUpcoming,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return assignRejection(tx, appt.ID, employee)
		}
		return NewNotificationService(tx).Notify(appt.CustomerID, models.NotificationTypeStatusChange,
			"Appointment confirmed",
			fmt.Sprintf("Your %s appointment on %s has been assigned to %s.", appt.ServiceName, appt.Date.Format("Jan 2, 2006"), employee.Name),
			"/customer/my-appointments")
	})
	if err != nil {
		return nil, err
	}
	return GetAppointment(db, appt.ID)
}

func capacityError(employee *models.User, count int64) error {
	return fmt.Errorf("%w: %s already has %d appointments that day", ErrInvalidInput, employee.Name, count)
}

// assignRejection explains why the guarded assignment update matched no row
func assignRejection(tx *gorm.DB, appointmentID string, employee *models.User) error {
	var current models.Appointment
	if err := tx.Select("status", "date").First(&current, "id = ?", appointmentID).Error; err != nil {
		return err
	}
	if current.Status != models.AppointmentStatusPending {
		return ErrInvalidTransition
	}
	count, err := CountEmployeeAppointmentsOn(tx, employee.ID, current.Date)
	if err != nil {
		return err
	}
	return capacityError(employee, count)
}

// CompleteAppointment closes an UPCOMING appointment; only the assigned employee may do it
func CompleteAppointment(db *gorm.DB, appointmentID, employeeID string, now time.Time) (*models.Appointment, error) {
	appt, err := GetAppointment(db, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.IsAssignedTo(employeeID) {
		return nil, ErrNotAssigned
	}
	if !appt.CanTransitionTo(models.AppointmentStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).Where("id = ?", appt.ID).
			Updates(map[string]interface{}{
				"status":       models.AppointmentStatusCompleted,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}
		return NewNotificationService(tx).Notify(appt.CustomerID, models.NotificationTypeStatusChange,
			"Service completed",
			fmt.Sprintf("Your %s appointment for %s is complete.", appt.ServiceName, appt.Vehicle.DisplayName()),
			"/customer/my-appointments")
	})
	if err != nil {
		return nil, err
	}
	return GetAppointment(db, appt.ID)
}

// CancelAppointment lets the owning customer cancel a PENDING or UPCOMING appointment
func CancelAppointment(db *gorm.DB, appointmentID, customerID string, now time.Time) (*models.Appointment, error) {
	appt, err := GetAppointment(db, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.CustomerID != customerID {
		return nil, ErrNotFound
	}
	if !appt.CanTransitionTo(models.AppointmentStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).Where("id = ?", appt.ID).
			Updates(map[string]interface{}{
				"status":       models.AppointmentStatusCancelled,
				"cancelled_at": now,
			}).Error; err != nil {
			return err
		}
		if appt.EmployeeID == nil {
			return nil
		}
		return NewNotificationService(tx).Notify(*appt.EmployeeID, models.NotificationTypeStatusChange,
			"Appointment cancelled",
			fmt.Sprintf("%s cancelled the %s appointment on %s.", appt.Customer.Name, appt.ServiceName, appt.Date.Format("Jan 2, 2006")),
			"/employee/appointments")
	})
	if err != nil {
		return nil, err
	}
	return GetAppointment(db, appt.ID)
}

// BuildAppointmentStatusEmailFor fills the status email from a loaded appointment
func BuildAppointmentStatusEmailFor(appt *models.Appointment, appURL string) *Email {
	data := AppointmentStatusEmailData{
		CustomerName: appt.Customer.Name,
		ServiceName:  appt.ServiceName,
		VehicleName:  appt.Vehicle.DisplayName(),
		Date:         appt.Date.Format("Jan 2, 2006"),
		TimeRange:    appt.TimeRange(),
		Status:       strings.ToLower(appt.Status),
		Link:         strings.TrimSuffix(appURL, "/") + "/customer/my-appointments",
	}
	if appt.Employee != nil {
		data.EmployeeName = appt.Employee.Name
	}
	return BuildAppointmentStatusEmail(appt.Customer.Email, data, appt.Customer.Language)
}
