package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"autocare_portal_go/middleware"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/layouts"
	"autocare_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// serviceError maps service sentinel errors to HTTP errors with a translated message
func serviceError(c echo.Context, err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, tr(c, "errors.not_found"))
	case errors.Is(err, services.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, tr(c, "errors.invalid_transition"))
	case errors.Is(err, services.ErrNotAssigned):
		return echo.NewHTTPError(http.StatusForbidden, tr(c, "errors.not_assigned"))
	case errors.Is(err, services.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, inputMessage(c, err))
	case errors.Is(err, services.ErrChatUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, tr(c, "chat.unavailable"))
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return echo.NewHTTPError(http.StatusInternalServerError, tr(c, "errors.server"))
	}
}

// inputMessage strips the sentinel prefix so the validation detail can be shown in a form
func inputMessage(c echo.Context, err error) string {
	msg := strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")
	if msg == "" || msg == services.ErrInvalidInput.Error() {
		return tr(c, "errors.invalid_input")
	}
	return msg
}

// HTTPErrorHandler renders HTML error pages, JSON for /api routes and inline alerts for htmx
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	var renderErr error
	switch {
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		renderErr = c.JSON(code, map[string]string{"error": message})
	case isHTMX(c):
		// htmx ignores non-2xx bodies unless told otherwise
		c.Response().Header().Set("HX-Reswap", "none")
		c.Response().Header().Set("HX-Trigger", `{"showError": "`+strings.ReplaceAll(message, `"`, `'`)+`"}`)
		renderErr = c.NoContent(code)
	default:
		home := "/login"
		if user := middleware.GetCurrentUser(c); user != nil {
			home = middleware.RoleHomePath(user.Role)
		}
		renderErr = render(c, code, layouts.Base(message, pages.ErrorPage(code, message, home)))
	}
	if renderErr != nil {
		log.Printf("[ERROR] failed to render error response: %v", renderErr)
	}
}
