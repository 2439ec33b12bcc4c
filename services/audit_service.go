package services

import (
	"encoding/json"
	"log"
	"time"

	"autocare_portal_go/models"

	"gorm.io/gorm"
)

// AuditPageSize is the default number of entries per activity page
const AuditPageSize = 25

// AuditContext identifies who did something and from where
type AuditContext struct {
	UserID    string
	UserName  string
	UserRole  string
	IPAddress string
	UserAgent string
}

// AuditEvent describes one audited operation
type AuditEvent struct {
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	ResourceName string
	Description  string
	OldValues    interface{}
	NewValues    interface{}
}

// RecordAuditEvent writes an audit log entry
func RecordAuditEvent(db *gorm.DB, ctx AuditContext, ev AuditEvent) error {
	entry := models.AuditLog{
		UserID:       ptrIfNotEmpty(ctx.UserID),
		UserName:     ctx.UserName,
		UserRole:     ctx.UserRole,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		ResourceName: ev.ResourceName,
		Action:       ev.Action,
		Description:  ev.Description,
		OldValues:    encodeAuditValues(ev.OldValues),
		NewValues:    encodeAuditValues(ev.NewValues),
		IPAddress:    ctx.IPAddress,
		UserAgent:    ctx.UserAgent,
	}
	return db.Create(&entry).Error
}

// LogAuditEvent records the event in the background so the request is not held up
func LogAuditEvent(db *gorm.DB, ctx AuditContext, ev AuditEvent) {
	go func() {
		if err := RecordAuditEvent(db, ctx, ev); err != nil {
			log.Printf("[AUDIT] Failed to create audit log: %v", err)
		}
	}()
}

func encodeAuditValues(values interface{}) string {
	if values == nil {
		return ""
	}
	b, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(b)
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetResourceAuditHistory retrieves the audit history for a specific resource, newest first
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// AuditLogFilters contains filter options for audit log queries
type AuditLogFilters struct {
	UserID       string
	ResourceType string
	Action       string
	DateFrom     time.Time
	DateTo       time.Time
	SearchQuery  string
}

// ListAuditLogs returns one page of audit logs, newest first, with the total match count
func ListAuditLogs(db *gorm.DB, filters AuditLogFilters, page, pageSize int) ([]models.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = AuditPageSize
	}

	query := db.Model(&models.AuditLog{})
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.ResourceType != "" {
		query = query.Where("resource_type = ?", filters.ResourceType)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}
	if filters.SearchQuery != "" {
		searchPattern := "%" + filters.SearchQuery + "%"
		query = query.Where(
			"resource_name LIKE ? OR description LIKE ? OR user_name LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	return logs, total, err
}
