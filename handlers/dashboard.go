package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/pages"
	"autocare_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// ChatResponder answers customer chat questions; nil disables the assistant
var ChatResponder services.ChatResponder

// CustomerDashboardHandler renders the customer dashboard
func CustomerDashboardHandler(c echo.Context) error {
	user := currentUser(c)
	view := pages.CustomerDashboardView{User: user, ChatEnabled: ChatResponder != nil}

	stats, err := services.ComputeCustomerStats(db.DB, user.ID)
	if err != nil {
		// Inconsistent counters still render; other failures hide the numbers
		log.Printf("[WARNING] dashboard stats for %s: %v", user.ID, err)
		if !errors.Is(err, models.ErrInconsistentStats) {
			view.StatsError = true
		}
	}
	view.Stats = stats

	if view.Upcoming, err = services.ListUpcomingCustomerAppointments(db.DB, user.ID, clock(), 5); err != nil {
		return serviceError(c, err)
	}
	projects, err := services.ListCustomerProjects(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	for _, p := range projects {
		if p.Status == models.ProjectStatusOngoing {
			view.Projects = append(view.Projects, p)
		}
	}

	return renderPage(c, "nav.dashboard", pages.CustomerDashboard(view))
}

// CustomerStatsAPIHandler returns the customer's dashboard statistics as JSON
func CustomerStatsAPIHandler(c echo.Context) error {
	user := currentUser(c)
	stats, err := services.ComputeCustomerStats(db.DB, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrInconsistentStats) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// CustomerExportHandler streams the customer's workbook
func CustomerExportHandler(c echo.Context) error {
	user := currentUser(c)
	buf, err := services.GenerateCustomerWorkbook(c.Request().Context(), db.DB, user)
	if err != nil {
		return serviceError(c, err)
	}

	filename := fmt.Sprintf("autocare-%s.xlsx", clock().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Stream(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf)
}

// ChatHandler answers a customer question with the assistant
func ChatHandler(c echo.Context) error {
	user := currentUser(c)
	question := strings.TrimSpace(c.FormValue("question"))

	chat := services.NewChatService(db.DB, ChatResponder)
	reply, err := chat.Ask(c.Request().Context(), user, question)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatUnavailable):
			return render(c, http.StatusOK, partials.ChatError(tr(c, "chat.unavailable")))
		case errors.Is(err, services.ErrInvalidInput):
			return render(c, http.StatusOK, partials.ChatError(tr(c, "errors.invalid_input")))
		}
		log.Printf("[WARNING] chat for %s failed: %v", user.ID, err)
		return render(c, http.StatusOK, partials.ChatError(tr(c, "chat.error")))
	}

	return render(c, http.StatusOK, partials.ChatAnswer(services.SanitizeText(question, services.MaxChatQuestionLength), reply))
}
