package services

import (
	"fmt"
	"time"

	"autocare_portal_go/models"

	"gorm.io/gorm"
)

// ComputeCustomerStats counts the customer's vehicles, appointments and projects.
// The result is validated; an inconsistent set of counters is still returned,
// together with models.ErrInconsistentStats.
func ComputeCustomerStats(db *gorm.DB, customerID string) (models.DashboardStats, error) {
	var stats models.DashboardStats

	counts := []struct {
		model interface{}
		where string
		args  []interface{}
		dest  *int64
	}{
		{&models.Vehicle{}, "customer_id = ?", []interface{}{customerID}, &stats.TotalVehicles},
		{&models.Appointment{}, "customer_id = ?", []interface{}{customerID}, &stats.TotalAppointments},
		{&models.Appointment{}, "customer_id = ? AND status IN ?",
			[]interface{}{customerID, []string{models.AppointmentStatusPending, models.AppointmentStatusUpcoming}},
			&stats.UpcomingAppointments},
		{&models.Appointment{}, "customer_id = ? AND status = ?",
			[]interface{}{customerID, models.AppointmentStatusCompleted}, &stats.CompletedAppointments},
		{&models.Project{}, "customer_id = ?", []interface{}{customerID}, &stats.TotalProjects},
		{&models.Project{}, "customer_id = ? AND status = ?",
			[]interface{}{customerID, models.ProjectStatusOngoing}, &stats.OngoingProjects},
		{&models.Project{}, "customer_id = ? AND status = ?",
			[]interface{}{customerID, models.ProjectStatusCompleted}, &stats.CompletedProjects},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range counts {
			if err := tx.Model(c.model).Where(c.where, c.args...).Count(c.dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	if err := stats.Validate(); err != nil {
		return stats, err
	}
	return stats, nil
}

// ComputeEmployeeStats counts the work assigned to the employee as of now
func ComputeEmployeeStats(db *gorm.DB, employeeID string, now time.Time) (models.EmployeeDashboardStats, error) {
	var stats models.EmployeeDashboardStats
	today := DayStart(now)
	weekAgo := now.AddDate(0, 0, -7)

	err := db.Transaction(func(tx *gorm.DB) error {
		appts := func() *gorm.DB { return tx.Model(&models.Appointment{}).Where("employee_id = ?", employeeID) }
		projects := func() *gorm.DB { return tx.Model(&models.Project{}).Where("employee_id = ?", employeeID) }

		if err := appts().Where("date = ? AND status <> ?", today, models.AppointmentStatusCancelled).
			Count(&stats.AppointmentsToday).Error; err != nil {
			return err
		}
		if err := appts().Where("status = ? AND date >= ?", models.AppointmentStatusUpcoming, today).
			Count(&stats.UpcomingAppointments).Error; err != nil {
			return err
		}
		if err := appts().Where("status = ?", models.AppointmentStatusCompleted).
			Count(&stats.CompletedAppointments).Error; err != nil {
			return err
		}
		if err := projects().Where("status = ?", models.ProjectStatusOngoing).
			Count(&stats.ActiveProjects).Error; err != nil {
			return err
		}
		if err := projects().Where("status = ?", models.ProjectStatusCompleted).
			Count(&stats.CompletedProjects).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProgressUpdate{}).
			Where("updated_by_id = ? AND created_at >= ?", employeeID, weekAgo).
			Count(&stats.UpdatesThisWeek).Error
	})
	if err != nil {
		return models.EmployeeDashboardStats{}, fmt.Errorf("failed to compute employee stats: %w", err)
	}
	return stats, nil
}

// ComputeAdminStats counts users and the work waiting for assignment
func ComputeAdminStats(db *gorm.DB) (models.AdminDashboardStats, error) {
	var stats models.AdminDashboardStats

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("role = ?", models.RoleCustomer).
			Count(&stats.TotalCustomers).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleEmployee, true).
			Count(&stats.TotalEmployees).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Vehicle{}).Count(&stats.TotalVehicles).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Appointment{}).Where("status = ?", models.AppointmentStatusPending).
			Count(&stats.PendingAppointments).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{}).Where("status = ?", models.ProjectStatusPending).
			Count(&stats.PendingProjects).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).Where("status = ?", models.ProjectStatusOngoing).
			Count(&stats.OngoingProjects).Error
	})
	if err != nil {
		return models.AdminDashboardStats{}, fmt.Errorf("failed to compute admin stats: %w", err)
	}
	return stats, nil
}
