package jobs

import (
	"fmt"
	"log"
	"time"

	"autocare_portal_go/config"
	"autocare_portal_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Cron specs
const (
	SessionCleanupSpec = "0 * * * *" // hourly
	MonitorPruneSpec   = "*/15 * * * *"
	RemindersSpec      = "0 8 * * *" // daily at 08:00
)

// NewScheduler registers the background jobs without starting them
func NewScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		log.Printf("[CRON] Unknown timezone %q, using UTC", cfg.SchedulerTimezone)
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(SessionCleanupSpec, func() {
		CleanupSessions(database)
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule session cleanup: %w", err)
	}

	if _, err := c.AddFunc(MonitorPruneSpec, func() {
		services.Monitor.Prune(time.Now())
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule login monitor pruning: %w", err)
	}

	if _, err := c.AddFunc(RemindersSpec, func() {
		SendAppointmentReminders(database, cfg, time.Now())
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule appointment reminders: %w", err)
	}

	return c, nil
}

// StartScheduler builds and starts the scheduler; callers Stop it on shutdown
func StartScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	c, err := NewScheduler(database, cfg)
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CRON] Scheduler started (%d jobs, tz %s)", len(c.Entries()), cfg.SchedulerTimezone)
	return c, nil
}

// CleanupSessions removes expired sessions
func CleanupSessions(database *gorm.DB) {
	if err := services.CleanupExpiredSessions(database); err != nil {
		log.Printf("[CRON] Session cleanup failed: %v", err)
		return
	}
	log.Println("[CRON] Expired sessions cleaned up")
}
