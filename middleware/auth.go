package middleware

import (
	"net/http"

	"autocare_portal_go/config"
	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "autocare_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth is middleware that requires authentication
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return redirectTo(c, "/login", http.StatusUnauthorized)
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return redirectTo(c, "/login", http.StatusUnauthorized)
			}

			if !session.User.IsActive {
				services.LogSecurityEvent("INACTIVE_SESSION", session.UserID, "session used by deactivated account")
				clearSessionCookie(c)
				return redirectTo(c, "/login", http.StatusUnauthorized)
			}

			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRole is middleware that requires one of the given roles.
// Page requests from the wrong role are sent to their own home page.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return redirectTo(c, "/login", http.StatusUnauthorized)
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			services.LogSecurityEvent("ROLE_DENIED", user.ID, c.Request().Method+" "+c.Request().URL.Path)
			if c.Request().Method == http.MethodGet && c.Request().Header.Get("HX-Request") != "true" {
				return c.Redirect(http.StatusSeeOther, RoleHomePath(user.Role))
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// RoleHomePath returns the dashboard path for a role
func RoleHomePath(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleEmployee:
		return "/employee/dashboard"
	default:
		return "/customer/dashboard"
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentSession retrieves the current session from context
func GetCurrentSession(c echo.Context) *models.Session {
	session, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// SetSessionCookie writes the session cookie for a freshly created session
func SetSessionCookie(c echo.Context, session *models.Session) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c echo.Context) {
	clearSessionCookie(c)
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

func isProduction(c echo.Context) bool {
	cfg, ok := c.Get("config").(*config.Config)
	return ok && cfg.IsProduction()
}

// redirectTo sends a redirect that HTMX follows as a full page navigation
func redirectTo(c echo.Context, path string, htmxStatus int) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(htmxStatus)
	}
	return c.Redirect(http.StatusSeeOther, path)
}
