package handlers

import (
	"errors"
	"net/http"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/pages"
	"autocare_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// CustomerProjectsHandler lists the customer's projects with the request form
func CustomerProjectsHandler(c echo.Context) error {
	return renderCustomerProjects(c, http.StatusOK, "")
}

func renderCustomerProjects(c echo.Context, status int, errMsg string) error {
	user := currentUser(c)
	projects, err := services.ListCustomerProjects(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	vehicles, err := services.ListCustomerVehicles(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	view := pages.CustomerProjectsView{Projects: projects, Vehicles: vehicles, Error: errMsg}
	return renderPageStatus(c, status, "nav.my_projects", pages.CustomerProjectsPage(view))
}

// CreateProjectHandler records a modification or repair request
func CreateProjectHandler(c echo.Context) error {
	user := currentUser(c)
	in := services.ProjectInput{
		VehicleID:     c.FormValue("vehicle_id"),
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		EstimatedCost: c.FormValue("estimated_cost"),
	}

	if _, err := services.CreateProject(db.DB, user.ID, in); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return renderCustomerProjects(c, http.StatusUnprocessableEntity, inputMessage(c, err))
		case errors.Is(err, services.ErrNotFound):
			return renderCustomerProjects(c, http.StatusUnprocessableEntity, tr(c, "errors.invalid_input"))
		}
		return serviceError(c, err)
	}
	return redirect(c, "/customer/my-projects")
}

// CancelProjectHandler withdraws one of the customer's open projects
func CancelProjectHandler(c echo.Context) error {
	user := currentUser(c)
	project, err := services.CancelProject(db.DB, c.Param("id"), user.ID, clock())
	if err != nil {
		return serviceError(c, err)
	}
	audit(c, user, services.AuditEvent{
		Action:       models.AuditActionCancel,
		ResourceType: models.AuditResourceProject,
		ResourceID:   project.ID,
		ResourceName: project.Title,
		NewValues:    map[string]string{"status": project.Status},
	})

	if isHTMX(c) {
		return render(c, http.StatusOK, partials.ProjectCard(*project, partials.ProjectActionsCustomer))
	}
	return redirect(c, "/customer/my-projects")
}

// projectStatusFilter keeps only known statuses from the query string
func projectStatusFilter(c echo.Context) string {
	status := strings.ToUpper(c.QueryParam("status"))
	if models.IsValidProjectStatus(status) {
		return status
	}
	return ""
}
