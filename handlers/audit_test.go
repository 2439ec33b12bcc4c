package handlers

import (
	"net/http"
	"testing"

	"autocare_portal_go/models"
	"autocare_portal_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminActivityHandler(t *testing.T) {
	database := setupTestDB(t)
	admin := createUser(t, database, "Admin", models.RoleAdmin)
	ctx := services.AuditContext{UserID: admin.ID, UserName: admin.Name, UserRole: admin.Role}

	require.NoError(t, services.RecordAuditEvent(database, ctx, services.AuditEvent{
		Action:       models.AuditActionAssign,
		ResourceType: models.AuditResourceProject,
		ResourceID:   "p1",
		ResourceName: "Body kit install",
		Description:  "Assigned to Ruwan",
	}))
	require.NoError(t, services.RecordAuditEvent(database, ctx, services.AuditEvent{
		Action:       models.AuditActionDelete,
		ResourceType: models.AuditResourceVehicle,
		ResourceID:   "v1",
		ResourceName: "CAB-1234",
	}))

	t.Run("Lists every entry", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/admin/activity", nil)
		asUser(c, admin)

		require.NoError(t, AdminActivityHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="activity-log"`)
		assert.Contains(t, body, "Assigned to Ruwan")
		assert.Contains(t, body, "CAB-1234")
	})

	t.Run("Filters by action", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/admin/activity?action=delete", nil)
		asUser(c, admin)

		require.NoError(t, AdminActivityHandler(c))
		body := rec.Body.String()
		assert.Contains(t, body, "CAB-1234")
		assert.NotContains(t, body, "Assigned to Ruwan")
	})

	t.Run("Unknown action is ignored", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/admin/activity?action=explode&page=-2", nil)
		asUser(c, admin)

		require.NoError(t, AdminActivityHandler(c))
		assert.Contains(t, rec.Body.String(), "CAB-1234")
		assert.Contains(t, rec.Body.String(), "Assigned to Ruwan")
	})

	t.Run("Empty result", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/admin/activity?q=nothing-matches", nil)
		asUser(c, admin)

		require.NoError(t, AdminActivityHandler(c))
		assert.NotContains(t, rec.Body.String(), `id="activity-log"`)
	})
}
