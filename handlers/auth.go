package handlers

import (
	"errors"
	"net/http"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/middleware"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/layouts"
	"autocare_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// HomeHandler sends visitors to their dashboard or to the login page
func HomeHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if session, err := services.ValidateSession(db.DB, cookie.Value); err == nil && session.User.IsActive {
			return c.Redirect(http.StatusSeeOther, middleware.RoleHomePath(session.User.Role))
		}
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginHandler renders the login page
func LoginHandler(c echo.Context) error {
	return render(c, http.StatusOK, layouts.Base(tr(c, "auth.login"), pages.LoginPage(pages.LoginView{})))
}

// LoginPostHandler handles the login form submission
func LoginPostHandler(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		return loginFailed(c, email, tr(c, "auth.invalid_credentials"))
	}

	user, err := services.Authenticate(db.DB, email, password, clock())
	switch {
	case errors.Is(err, services.ErrAccountLocked):
		return loginFailed(c, email, tr(c, "auth.locked"))
	case errors.Is(err, services.ErrInvalidCredentials):
		services.LogSecurityEvent("LOGIN_FAILED", "", "email="+email+" ip="+c.RealIP())
		services.Monitor.TrackFailedLogin(c.RealIP(), clock())
		return loginFailed(c, email, tr(c, "auth.invalid_credentials"))
	case err != nil:
		return serviceError(c, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return serviceError(c, err)
	}
	middleware.SetSessionCookie(c, session)
	audit(c, user, services.AuditEvent{
		Action:       models.AuditActionLogin,
		ResourceType: models.AuditResourceUser,
		ResourceID:   user.ID,
		ResourceName: user.Email,
	})

	if user.Language != "" {
		middleware.SetLanguageCookie(c, user.Language)
	}

	return redirect(c, middleware.RoleHomePath(user.Role))
}

func loginFailed(c echo.Context, email, message string) error {
	view := pages.LoginView{Email: email, Error: message}
	if isHTMX(c) {
		return render(c, http.StatusOK, pages.LoginPage(view))
	}
	return render(c, http.StatusUnauthorized, layouts.Base(tr(c, "auth.login"), pages.LoginPage(view)))
}

// SignupHandler renders the customer registration page
func SignupHandler(c echo.Context) error {
	return render(c, http.StatusOK, layouts.Base(tr(c, "auth.signup"), pages.SignupPage(pages.SignupView{})))
}

// SignupPostHandler registers a customer, signs them in and sends the welcome email
func SignupPostHandler(c echo.Context) error {
	view := pages.SignupView{
		Name:  strings.TrimSpace(c.FormValue("name")),
		Email: strings.TrimSpace(c.FormValue("email")),
		Phone: strings.TrimSpace(c.FormValue("phone")),
	}

	// Accounts created here are always customers; staff come from cmd/create-user
	user, err := services.RegisterUser(db.DB, services.RegisterInput{
		Name:     view.Name,
		Email:    view.Email,
		Phone:    view.Phone,
		Password: c.FormValue("password"),
	})
	if err != nil {
		if !errors.Is(err, services.ErrInvalidInput) {
			return serviceError(c, err)
		}
		view.Error = inputMessage(c, err)
		return render(c, http.StatusUnprocessableEntity, layouts.Base(tr(c, "auth.signup"), pages.SignupPage(view)))
	}

	if lang := locale(c); lang != user.Language {
		db.DB.Model(user).Update("language", lang)
		user.Language = lang
	}

	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildWelcomeEmail(user.Email, user.Name, strings.TrimSuffix(cfg.AppURL, "/")+"/login", user.Language))

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return serviceError(c, err)
	}
	middleware.SetSessionCookie(c, session)

	return redirect(c, middleware.RoleHomePath(user.Role))
}

// LogoutHandler deletes the session and clears the cookie
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			c.Logger().Warnf("logout: %v", err)
		}
	}
	middleware.ClearSessionCookie(c)
	if user := middleware.GetCurrentUser(c); user != nil {
		audit(c, user, services.AuditEvent{
			Action:       models.AuditActionLogout,
			ResourceType: models.AuditResourceUser,
			ResourceID:   user.ID,
			ResourceName: user.Email,
		})
	}
	return redirect(c, "/login")
}
