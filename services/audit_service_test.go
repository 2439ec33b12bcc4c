package services

import (
	"encoding/json"
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAuditEvent(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Test Auditor", models.RoleAdmin)

	ctx := AuditContext{
		UserID:    admin.ID,
		UserName:  admin.Name,
		UserRole:  admin.Role,
		IPAddress: "10.0.0.7",
	}
	err := RecordAuditEvent(db, ctx, AuditEvent{
		Action:       models.AuditActionAssign,
		ResourceType: models.AuditResourceAppointment,
		ResourceID:   "appt-123",
		ResourceName: "Oil change",
		Description:  "Assigned to Ruwan",
		OldValues:    map[string]interface{}{"status": "PENDING"},
		NewValues:    map[string]interface{}{"status": "UPCOMING", "employee": "Ruwan"},
	})
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry, "resource_id = ?", "appt-123").Error)
	assert.Equal(t, admin.ID, *entry.UserID)
	assert.Equal(t, models.AuditResourceAppointment, entry.ResourceType)
	assert.Equal(t, "10.0.0.7", entry.IPAddress)

	var savedOld map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.OldValues), &savedOld))
	assert.Equal(t, "PENDING", savedOld["status"])

	changes := entry.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, "employee", changes[0].Field)
	assert.Nil(t, changes[0].Old)
	assert.Equal(t, "status", changes[1].Field)
	assert.Equal(t, "UPCOMING", changes[1].New)

	t.Run("Entries are immutable", func(t *testing.T) {
		assert.Error(t, db.Model(&entry).Update("description", "tampered").Error)
		assert.Error(t, db.Delete(&entry).Error)
	})
}

func TestLogAuditEvent(t *testing.T) {
	db := setupTestDB(t)

	LogAuditEvent(db, AuditContext{UserName: "System", UserRole: "system"}, AuditEvent{
		Action:       models.AuditActionLogin,
		ResourceType: models.AuditResourceUser,
		ResourceID:   "user-1",
	})

	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&models.AuditLog{}).Where("resource_id = ?", "user-1").Count(&count)
		return count == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestListAuditLogs(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", models.RoleAdmin)
	employee := createTestUser(t, db, "Ruwan", models.RoleEmployee)

	record := func(user *models.User, action models.AuditAction, resource, name string) {
		require.NoError(t, RecordAuditEvent(db,
			AuditContext{UserID: user.ID, UserName: user.Name, UserRole: user.Role},
			AuditEvent{Action: action, ResourceType: resource, ResourceID: name, ResourceName: name}))
	}
	record(admin, models.AuditActionAssign, models.AuditResourceAppointment, "Oil change")
	record(admin, models.AuditActionAssign, models.AuditResourceProject, "Turbo install")
	record(employee, models.AuditActionComplete, models.AuditResourceAppointment, "Brake pads")

	t.Run("All", func(t *testing.T) {
		logs, total, err := ListAuditLogs(db, AuditLogFilters{}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, logs, 3)
	})

	t.Run("By action and resource", func(t *testing.T) {
		logs, total, err := ListAuditLogs(db, AuditLogFilters{
			Action:       string(models.AuditActionAssign),
			ResourceType: models.AuditResourceAppointment,
		}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Oil change", logs[0].ResourceName)
	})

	t.Run("By user", func(t *testing.T) {
		_, total, err := ListAuditLogs(db, AuditLogFilters{UserID: employee.ID}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("Search", func(t *testing.T) {
		logs, _, err := ListAuditLogs(db, AuditLogFilters{SearchQuery: "turbo"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, models.AuditResourceProject, logs[0].ResourceType)
	})

	t.Run("Pagination", func(t *testing.T) {
		logs, total, err := ListAuditLogs(db, AuditLogFilters{}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, logs, 1)

		logs, _, err = ListAuditLogs(db, AuditLogFilters{}, 0, 0)
		require.NoError(t, err)
		assert.Len(t, logs, 3)
	})

	t.Run("History for one resource", func(t *testing.T) {
		logs, err := GetResourceAuditHistory(db, models.AuditResourceProject, "Turbo install")
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})
}
