package handlers

import (
	"strconv"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// audit records ev for user in the background; user may be nil for anonymous actions
func audit(c echo.Context, user *models.User, ev services.AuditEvent) {
	ctx := services.AuditContext{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if user != nil {
		ctx.UserID, ctx.UserName, ctx.UserRole = user.ID, user.Name, user.Role
	}
	services.LogAuditEvent(db.DB, ctx, ev)
}

// AdminActivityHandler lists the audit trail with filters and pagination
func AdminActivityHandler(c echo.Context) error {
	filters := services.AuditLogFilters{
		ResourceType: c.QueryParam("resource"),
		SearchQuery:  strings.TrimSpace(c.QueryParam("q")),
	}
	if action := models.AuditAction(strings.ToUpper(c.QueryParam("action"))); isAuditAction(action) {
		filters.Action = string(action)
	}
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	logs, total, err := services.ListAuditLogs(db.DB, filters, page, services.AuditPageSize)
	if err != nil {
		return serviceError(c, err)
	}

	view := pages.AdminActivityView{
		Logs:     logs,
		Total:    total,
		Page:     page,
		PageSize: services.AuditPageSize,
		Filters:  filters,
	}
	return renderPage(c, "nav.activity", pages.AdminActivityPage(view))
}

func isAuditAction(a models.AuditAction) bool {
	for _, known := range models.AuditActions {
		if a == known {
			return true
		}
	}
	return false
}
