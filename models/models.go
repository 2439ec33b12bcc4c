package models

// All returns every model managed by AutoMigrate, in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Vehicle{},
		&Appointment{},
		&Project{},
		&ProgressUpdate{},
		&Notification{},
		&AuditLog{},
	}
}
