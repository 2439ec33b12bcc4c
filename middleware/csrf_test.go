package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autocare_portal_go/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", "test-csrf-token")
		assert.Equal(t, "test-csrf-token", GetCSRFToken(c))
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "", GetCSRFToken(c))
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", 123)
		assert.Equal(t, "", GetCSRFToken(c))
	})
}

func TestCSRF(t *testing.T) {
	e := echo.New()
	mw := CSRF(&config.Config{Environment: "development"})
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, GetCSRFToken(c))
	})

	t.Run("GetIssuesToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.NotEmpty(t, rec.Body.String())
	})

	t.Run("PostWithoutTokenRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=a@b.c"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		err := handler(e.NewContext(req, rec))
		assert.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, he.Code)
	})

	t.Run("PostWithMatchingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: "_csrf", Value: "known-token"})
		req.Header.Set(CSRFHeaderName, "known-token")
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
