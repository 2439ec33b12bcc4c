package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/pages"
	"autocare_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// EmployeeDashboardHandler renders the employee landing page
func EmployeeDashboardHandler(c echo.Context) error {
	user := currentUser(c)
	now := clock()

	stats, err := services.ComputeEmployeeStats(db.DB, user.ID, now)
	if err != nil {
		return serviceError(c, err)
	}
	appointments, err := services.ListEmployeeAppointments(db.DB, user.ID, "")
	if err != nil {
		return serviceError(c, err)
	}
	projects, err := services.ListEmployeeProjects(db.DB, user.ID, models.ProjectStatusOngoing)
	if err != nil {
		return serviceError(c, err)
	}

	view := pages.EmployeeDashboardView{User: user, Stats: stats, Projects: projects}
	today := pages.DateKey(now)
	for _, a := range appointments {
		if pages.DateKey(a.Date) == today && a.Status != models.AppointmentStatusCancelled {
			view.Today = append(view.Today, a)
		}
	}
	return renderPage(c, "nav.dashboard", pages.EmployeeDashboard(view))
}

// EmployeeAppointmentsHandler lists the appointments assigned to the employee
func EmployeeAppointmentsHandler(c echo.Context) error {
	user := currentUser(c)
	status := appointmentStatusFilter(c)
	appointments, err := services.ListEmployeeAppointments(db.DB, user.ID, status)
	if err != nil {
		return serviceError(c, err)
	}
	view := pages.EmployeeWorkView{Appointments: appointments, Status: status}
	return renderPage(c, "nav.appointments", pages.EmployeeAppointmentsPage(view))
}

// CompleteAppointmentHandler closes an appointment assigned to the employee
func CompleteAppointmentHandler(c echo.Context) error {
	user := currentUser(c)
	appt, err := services.CompleteAppointment(db.DB, c.Param("id"), user.ID, clock())
	if err != nil {
		return serviceError(c, err)
	}
	audit(c, user, services.AuditEvent{
		Action:       models.AuditActionComplete,
		ResourceType: models.AuditResourceAppointment,
		ResourceID:   appt.ID,
		ResourceName: appt.ServiceName,
		OldValues:    map[string]string{"status": models.AppointmentStatusUpcoming},
		NewValues:    map[string]string{"status": appt.Status},
	})

	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildAppointmentStatusEmailFor(appt, cfg.AppURL))

	if isHTMX(c) {
		return render(c, http.StatusOK, partials.AppointmentRow(*appt, partials.AppointmentActionsEmployee))
	}
	return redirect(c, "/employee/appointments")
}

// EmployeeProjectsHandler lists the projects assigned to the employee
func EmployeeProjectsHandler(c echo.Context) error {
	user := currentUser(c)
	status := projectStatusFilter(c)
	projects, err := services.ListEmployeeProjects(db.DB, user.ID, status)
	if err != nil {
		return serviceError(c, err)
	}
	view := pages.EmployeeWorkView{Projects: projects, Status: status}
	return renderPage(c, "nav.projects", pages.EmployeeProjectsPage(view))
}

// CompleteProjectHandler marks an ongoing project as completed
func CompleteProjectHandler(c echo.Context) error {
	user := currentUser(c)
	project, err := services.UpdateProjectStatus(db.DB, c.Param("id"), user.ID, models.ProjectStatusCompleted, clock())
	if err != nil {
		return serviceError(c, err)
	}
	audit(c, user, services.AuditEvent{
		Action:       models.AuditActionComplete,
		ResourceType: models.AuditResourceProject,
		ResourceID:   project.ID,
		ResourceName: project.Title,
		OldValues:    map[string]string{"status": models.ProjectStatusOngoing},
		NewValues:    map[string]string{"status": project.Status},
	})
	if isHTMX(c) {
		return render(c, http.StatusOK, partials.ProjectCard(*project, partials.ProjectActionsEmployee))
	}
	return redirect(c, "/employee/projects")
}

// ProgressHandler shows the progress form for a selected appointment or project
func ProgressHandler(c echo.Context) error {
	return renderProgress(c, http.StatusOK, c.QueryParam("kind"), c.QueryParam("id"), "")
}

func renderProgress(c echo.Context, status int, kind, targetID, errMsg string) error {
	user := currentUser(c)
	appointments, err := services.ListEmployeeAppointments(db.DB, user.ID, models.AppointmentStatusUpcoming)
	if err != nil {
		return serviceError(c, err)
	}
	projects, err := services.ListEmployeeProjects(db.DB, user.ID, models.ProjectStatusOngoing)
	if err != nil {
		return serviceError(c, err)
	}

	view := pages.ProgressView{
		Appointments: appointments,
		Projects:     projects,
		Error:        errMsg,
		Now:          clock(),
	}
	if assignedTarget(kind, targetID, appointments, projects) {
		view.Kind, view.TargetID = kind, targetID
		history, err := services.ListProgressHistory(db.DB, kind, targetID)
		if err != nil {
			return serviceError(c, err)
		}
		view.History = history
		view.Latest = services.LatestProgress(history)
		view.Average = services.AverageProgress(history)
	}
	return renderPageStatus(c, status, "nav.progress", pages.ProgressPage(view))
}

// assignedTarget reports whether the selection is one of the open items listed for the employee
func assignedTarget(kind, id string, appointments []models.Appointment, projects []models.Project) bool {
	switch kind {
	case "appointment":
		for _, a := range appointments {
			if a.ID == id {
				return true
			}
		}
	case "project":
		for _, p := range projects {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

// ProgressPostHandler records a progress update and tells the customer by email
func ProgressPostHandler(c echo.Context) error {
	user := currentUser(c)
	kind, id := c.Param("kind"), c.Param("id")

	percentage, err := strconv.Atoi(strings.TrimSpace(c.FormValue("percentage")))
	if err != nil {
		return renderProgress(c, http.StatusUnprocessableEntity, kind, id, tr(c, "progress.invalid_percentage"))
	}
	in := services.ProgressInput{
		Stage:      c.FormValue("stage"),
		Percentage: percentage,
		Remarks:    c.FormValue("remarks"),
	}

	var (
		update   *models.ProgressUpdate
		customer models.User
		subject  string
		path     string
	)
	switch kind {
	case "appointment":
		update, err = services.RecordAppointmentProgress(db.DB, id, user.ID, in)
		if err == nil {
			var appt *models.Appointment
			if appt, err = services.GetAppointment(db.DB, id); err == nil {
				customer, subject, path = appt.Customer, appt.ServiceName, "/customer/my-appointments"
			}
		}
	case "project":
		update, err = services.RecordProjectProgress(db.DB, id, user.ID, in)
		if err == nil {
			var project *models.Project
			if project, err = services.GetProject(db.DB, id); err == nil {
				customer, subject, path = project.Customer, project.Title, "/customer/my-projects"
			}
		}
	default:
		return echo.NewHTTPError(http.StatusNotFound, tr(c, "errors.not_found"))
	}
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return renderProgress(c, http.StatusUnprocessableEntity, kind, id, inputMessage(c, err))
		}
		return serviceError(c, err)
	}

	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildProgressEmailFor(customer, subject, update, cfg.AppURL, path))

	return redirect(c, fmt.Sprintf("/employee/progress?kind=%s&id=%s", kind, id))
}

// ProjectReportHandler renders the project's progress report as PDF and archives a copy
func ProjectReportHandler(c echo.Context) error {
	user := currentUser(c)
	project, err := services.GetProject(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if !project.IsAssignedTo(user.ID) {
		return serviceError(c, services.ErrNotAssigned)
	}

	updates, err := services.ListProgressHistory(db.DB, "project", project.ID)
	if err != nil {
		return serviceError(c, err)
	}
	pdf, err := services.GenerateProjectReportPDF(c.Request().Context(), project, updates)
	if err != nil {
		return serviceError(c, err)
	}

	if store := services.Storage; store != nil && store.IsConfigured() {
		key := services.GenerateProjectReportKey(project.ID)
		if _, err := store.UploadReader(c.Request().Context(), bytes.NewReader(pdf), key, "application/pdf", int64(len(pdf))); err != nil {
			log.Printf("[WARNING] Failed to archive report for project %s: %v", project.ID, err)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="project-%s.pdf"`, project.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
