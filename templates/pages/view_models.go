package pages

import (
	"time"

	"autocare_portal_go/models"
	"autocare_portal_go/services"
)

// LoginView backs the sign-in form
type LoginView struct {
	Email string
	Error string
}

// SignupView backs the registration form
type SignupView struct {
	Name  string
	Email string
	Phone string
	Error string
}

// CustomerDashboardView holds the data for the customer dashboard
type CustomerDashboardView struct {
	User        *models.User
	Stats       models.DashboardStats
	StatsError  bool
	Upcoming    []models.Appointment
	Projects    []models.Project
	UnreadCount int64
	ChatEnabled bool
}

// VehiclesView lists the customer's vehicles
type VehiclesView struct {
	Vehicles []models.Vehicle
	Error    string
	Now      time.Time
}

// CustomerAppointmentsView lists appointments next to the booking form
type CustomerAppointmentsView struct {
	Appointments []models.Appointment
	Vehicles     []models.Vehicle
	Error        string
	Today        time.Time
}

// CustomerProjectsView lists projects next to the request form
type CustomerProjectsView struct {
	Projects []models.Project
	Vehicles []models.Vehicle
	Error    string
}

// NotificationsView lists a user's notifications
type NotificationsView struct {
	Notifications []models.Notification
	UnreadCount   int64
	Now           time.Time
	BasePath      string // /customer/notifications or /employee/notifications
}

// EmployeeDashboardView holds the data for the employee dashboard
type EmployeeDashboardView struct {
	User     *models.User
	Stats    models.EmployeeDashboardStats
	Today    []models.Appointment
	Projects []models.Project
}

// EmployeeWorkView lists assigned appointments or projects filtered by status
type EmployeeWorkView struct {
	Appointments []models.Appointment
	Projects     []models.Project
	Status       string
	Error        string
}

// ProgressView backs the progress form and history panel
type ProgressView struct {
	Appointments []models.Appointment
	Projects     []models.Project
	Kind         string // "appointment" or "project"
	TargetID     string
	History      []models.ProgressUpdate
	Latest       int
	Average      float64
	Error        string
	Now          time.Time
}

// AdminDashboardView holds the data for the admin dashboard
type AdminDashboardView struct {
	User    *models.User
	Stats   models.AdminDashboardStats
	Pending []models.Appointment
}

// AdminAppointmentsView lists unassigned appointments with per-date employee load
type AdminAppointmentsView struct {
	Pending      []models.Appointment
	Availability map[string][]services.EmployeeAvailability
	Error        string
}

// AdminProjectsView lists projects awaiting assignment
type AdminProjectsView struct {
	Projects  []models.Project
	Employees []models.User
	Status    string
	Error     string
}

// AdminActivityView is one page of the audit trail
type AdminActivityView struct {
	Logs     []models.AuditLog
	Total    int64
	Page     int
	PageSize int
	Filters  services.AuditLogFilters
}

// PageCount is the number of pages the matching entries span
func (v AdminActivityView) PageCount() int {
	if v.PageSize <= 0 {
		return 1
	}
	return int((v.Total + int64(v.PageSize) - 1) / int64(v.PageSize))
}

// DateKey indexes availability by calendar day
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
