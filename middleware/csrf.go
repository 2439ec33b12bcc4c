package middleware

import (
	"net/http"

	"autocare_portal_go/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	// CSRFHeaderName is sent by htmx on every non-GET request
	CSRFHeaderName = "X-CSRF-Token"
	// CSRFFormField is the hidden input carried by plain forms
	CSRFFormField = "_csrf"
)

// CSRF returns echo's double-submit cookie protection configured for forms and htmx.
// JSON API reads are exempt since they never mutate state.
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	return echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "header:" + CSRFHeaderName + ",form:" + CSRFFormField,
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	token := c.Get("csrf")
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}
