package handlers

import (
	"net/http"
	"time"

	"autocare_portal_go/config"
	"autocare_portal_go/middleware"
	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/layouts"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// clock is the handlers' time source, replaced in tests
var clock = time.Now

// render writes a component with the request context carrying the CSRF token
func render(c echo.Context, status int, component templ.Component) error {
	ctx := components.WithCSRFToken(c.Request().Context(), middleware.GetCSRFToken(c))
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(ctx, c.Response().Writer)
}

// renderPage wraps content in the signed-in user's role shell. htmx requests
// get the bare content.
func renderPage(c echo.Context, titleKey string, content templ.Component) error {
	return renderPageStatus(c, http.StatusOK, titleKey, content)
}

// renderPageStatus is renderPage with an explicit status, used for rejected forms
func renderPageStatus(c echo.Context, status int, titleKey string, content templ.Component) error {
	if isHTMX(c) {
		return render(c, status, content)
	}
	return render(c, status, layouts.Base(i18n.T(c.Request().Context(), titleKey), shellFor(c, content)))
}

func shellFor(c echo.Context, content templ.Component) templ.Component {
	user := middleware.GetCurrentUser(c)
	path := c.Request().URL.Path
	if user == nil {
		return content
	}
	switch user.Role {
	case models.RoleAdmin:
		return layouts.AdminLayout(components.Sidebar(components.AdminNav(), path), user, content)
	case models.RoleEmployee:
		return layouts.EmployeeLayout(components.Sidebar(employeeNav(user.ID), path), content)
	default:
		return layouts.CustomerLayout(components.Sidebar(customerNav(user.ID), path), user, content)
	}
}

// getConfig returns the config stored on the context by the server
func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{EmailTestMode: true}
}

// currentUser returns the authenticated user; routes are behind RequireAuth
func currentUser(c echo.Context) *models.User {
	return middleware.GetCurrentUser(c)
}

// locale returns the request language
func locale(c echo.Context) string {
	return middleware.GetLocale(c)
}

// tr translates in the request language
func tr(c echo.Context, key string, args ...map[string]interface{}) string {
	return i18n.Translate(locale(c), key, args...)
}
