package handlers

import (
	"errors"
	"net/http"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// AdminDashboardHandler renders the admin landing page
func AdminDashboardHandler(c echo.Context) error {
	stats, err := services.ComputeAdminStats(db.DB)
	if err != nil {
		return serviceError(c, err)
	}
	pending, err := services.ListPendingAppointments(db.DB)
	if err != nil {
		return serviceError(c, err)
	}
	view := pages.AdminDashboardView{User: currentUser(c), Stats: stats, Pending: pending}
	return renderPage(c, "nav.dashboard", pages.AdminDashboard(view))
}

// AdminAppointmentsHandler lists pending appointments with the load of every employee on each date
func AdminAppointmentsHandler(c echo.Context) error {
	pending, err := services.ListPendingAppointments(db.DB)
	if err != nil {
		return serviceError(c, err)
	}

	availability := make(map[string][]services.EmployeeAvailability)
	for _, a := range pending {
		key := pages.DateKey(a.Date)
		if _, done := availability[key]; done {
			continue
		}
		rows, err := services.ListEmployeeAvailability(db.DB, a.Date)
		if err != nil {
			return serviceError(c, err)
		}
		availability[key] = rows
	}

	view := pages.AdminAppointmentsView{Pending: pending, Availability: availability}
	return renderPage(c, "nav.assignments", pages.AdminAppointmentsPage(view))
}

// AssignAppointmentHandler hands a pending appointment to an employee.
// htmx callers get an empty body so the card leaves the list; failures go to the error box.
func AssignAppointmentHandler(c echo.Context) error {
	appt, err := services.AssignAppointment(db.DB, c.Param("id"), c.FormValue("employee_id"))
	if err != nil {
		return assignFailed(c, err)
	}
	audit(c, currentUser(c), services.AuditEvent{
		Action:       models.AuditActionAssign,
		ResourceType: models.AuditResourceAppointment,
		ResourceID:   appt.ID,
		ResourceName: appt.ServiceName,
		Description:  "Assigned to " + appt.Employee.Name,
		OldValues:    map[string]string{"status": models.AppointmentStatusPending},
		NewValues:    map[string]string{"status": appt.Status, "employee_id": *appt.EmployeeID},
	})

	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildAppointmentStatusEmailFor(appt, cfg.AppURL))

	if isHTMX(c) {
		return c.HTML(http.StatusOK, "")
	}
	return redirect(c, "/admin/appointments")
}

// AdminProjectsHandler lists projects with an employee picker for pending ones
func AdminProjectsHandler(c echo.Context) error {
	status := projectStatusFilter(c)
	projects, err := services.ListProjects(db.DB, status)
	if err != nil {
		return serviceError(c, err)
	}
	employees, err := services.ListActiveEmployees(db.DB)
	if err != nil {
		return serviceError(c, err)
	}

	view := pages.AdminProjectsView{Projects: projects, Employees: employees, Status: status}
	return renderPage(c, "nav.projects", pages.AdminProjectsPage(view))
}

// AssignProjectHandler starts a pending project with the chosen employee
func AssignProjectHandler(c echo.Context) error {
	project, err := services.AssignProject(db.DB, c.Param("id"), c.FormValue("employee_id"), clock())
	if err != nil {
		return assignFailed(c, err)
	}
	audit(c, currentUser(c), services.AuditEvent{
		Action:       models.AuditActionAssign,
		ResourceType: models.AuditResourceProject,
		ResourceID:   project.ID,
		ResourceName: project.Title,
		Description:  "Assigned to " + project.Employee.Name,
		OldValues:    map[string]string{"status": models.ProjectStatusPending},
		NewValues:    map[string]string{"status": project.Status, "employee_id": *project.EmployeeID},
	})
	if isHTMX(c) {
		return c.HTML(http.StatusOK, "")
	}
	return redirect(c, "/admin/projects")
}

// assignFailed shows validation and conflict errors in the page's error box
func assignFailed(c echo.Context, err error) error {
	if !isHTMX(c) {
		return serviceError(c, err)
	}

	var msg string
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		msg = inputMessage(c, err)
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrNotFound):
		msg = serviceError(c, err).Message.(string)
	default:
		return serviceError(c, err)
	}

	retarget(c, "#assign-errors", "innerHTML")
	return render(c, http.StatusOK, components.Alert("error", msg))
}

// AvailabilityAPIHandler returns every active employee's load for ?date=YYYY-MM-DD
func AvailabilityAPIHandler(c echo.Context) error {
	date, err := services.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, tr(c, "appointments.invalid_date"))
	}
	rows, err := services.ListEmployeeAvailability(db.DB, date)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
