package models

import (
	"errors"
	"fmt"
)

// ErrInconsistentStats is returned by Validate when counters contradict each other
var ErrInconsistentStats = errors.New("inconsistent dashboard statistics")

// DashboardStats holds the aggregate counters shown on the customer dashboard.
// It is a read model: building one never validates, call Validate to check
// the relationships between counters.
type DashboardStats struct {
	TotalVehicles         int64 `json:"totalVehicles"`
	UpcomingAppointments  int64 `json:"upcomingAppointments"`
	OngoingProjects       int64 `json:"ongoingProjects"`
	CompletedAppointments int64 `json:"completedAppointments"`
	CompletedProjects     int64 `json:"completedProjects"`
	TotalAppointments     int64 `json:"totalAppointments"`
	TotalProjects         int64 `json:"totalProjects"`
}

// Validate checks that counters are non-negative, that completed appointments
// do not exceed the total and that completed plus ongoing projects fit in the total.
func (s DashboardStats) Validate() error {
	counters := []struct {
		name  string
		value int64
	}{
		{"totalVehicles", s.TotalVehicles},
		{"upcomingAppointments", s.UpcomingAppointments},
		{"ongoingProjects", s.OngoingProjects},
		{"completedAppointments", s.CompletedAppointments},
		{"completedProjects", s.CompletedProjects},
		{"totalAppointments", s.TotalAppointments},
		{"totalProjects", s.TotalProjects},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInconsistentStats, c.name, c.value)
		}
	}

	if s.CompletedAppointments > s.TotalAppointments {
		return fmt.Errorf("%w: completed appointments (%d) exceed total (%d)",
			ErrInconsistentStats, s.CompletedAppointments, s.TotalAppointments)
	}
	if s.CompletedAppointments+s.UpcomingAppointments > s.TotalAppointments {
		return fmt.Errorf("%w: completed and upcoming appointments (%d) exceed total (%d)",
			ErrInconsistentStats, s.CompletedAppointments+s.UpcomingAppointments, s.TotalAppointments)
	}
	if s.CompletedProjects+s.OngoingProjects > s.TotalProjects {
		return fmt.Errorf("%w: completed and ongoing projects (%d) exceed total (%d)",
			ErrInconsistentStats, s.CompletedProjects+s.OngoingProjects, s.TotalProjects)
	}
	return nil
}

// CancelledOrOtherAppointments is what remains of the total once upcoming and completed are removed
func (s DashboardStats) CancelledOrOtherAppointments() int64 {
	return s.TotalAppointments - s.UpcomingAppointments - s.CompletedAppointments
}

// EmployeeDashboardStats holds the counters shown on the employee dashboard
type EmployeeDashboardStats struct {
	AppointmentsToday     int64 `json:"appointmentsToday"`
	UpcomingAppointments  int64 `json:"upcomingAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
	ActiveProjects        int64 `json:"activeProjects"`
	CompletedProjects     int64 `json:"completedProjects"`
	UpdatesThisWeek       int64 `json:"updatesThisWeek"`
}

// AdminDashboardStats holds the counters shown on the admin dashboard
type AdminDashboardStats struct {
	TotalCustomers      int64 `json:"totalCustomers"`
	TotalEmployees      int64 `json:"totalEmployees"`
	TotalVehicles       int64 `json:"totalVehicles"`
	PendingAppointments int64 `json:"pendingAppointments"`
	PendingProjects     int64 `json:"pendingProjects"`
	OngoingProjects     int64 `json:"ongoingProjects"`
}
