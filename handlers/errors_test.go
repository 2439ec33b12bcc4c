package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"autocare_portal_go/models"
	"autocare_portal_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError(t *testing.T) {
	_, c, _ := setupEcho(http.MethodGet, "/", nil)

	tests := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("loading: %w", services.ErrNotFound), http.StatusNotFound},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrNotAssigned, http.StatusForbidden},
		{fmt.Errorf("%w: title is required", services.ErrInvalidInput), http.StatusUnprocessableEntity},
		{services.ErrChatUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, serviceError(c, tt.err).Code, tt.err.Error())
	}

	he := serviceError(c, fmt.Errorf("%w: title is required", services.ErrInvalidInput))
	assert.Equal(t, "title is required", he.Message)

	he = serviceError(c, errors.New("disk full"))
	assert.NotContains(t, he.Message, "disk full")
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Run("API routes get JSON", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/admin/availability", nil)
		HTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "bad date"), c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "bad date", body["error"])
	})

	t.Run("htmx requests get a trigger", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/customer/my-projects/x/cancel", nil)
		asHTMX(c)
		HTTPErrorHandler(echo.NewHTTPError(http.StatusConflict, `Can't "cancel"`), c)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
		assert.JSONEq(t, `{"showError": "Can't 'cancel'"}`, rec.Header().Get("HX-Trigger"))
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Pages link back to the role home", func(t *testing.T) {
		database := setupTestDB(t)
		employee := createUser(t, database, "Ruwan", models.RoleEmployee)

		_, c, rec := setupEcho(http.MethodGet, "/employee/projects/x/report.pdf", nil)
		asUser(c, employee)
		HTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "Not found"), c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "404")
		assert.Contains(t, rec.Body.String(), `href="/employee/dashboard"`)
	})

	t.Run("Plain errors become 500", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/customer/dashboard", nil)
		HTTPErrorHandler(errors.New("boom"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
		assert.Contains(t, rec.Body.String(), `href="/login"`)
	})
}
