package jobs

import (
	"log"
	"strings"
	"time"

	"autocare_portal_go/config"
	"autocare_portal_go/models"
	"autocare_portal_go/services"

	"gorm.io/gorm"
)

// ReminderWindowStart and ReminderWindowEnd bound how far ahead a reminder goes out
const (
	ReminderWindowStart = 24 * time.Hour
	ReminderWindowEnd   = 48 * time.Hour
)

// SendAppointmentReminders emails customers whose assigned appointment starts in
// the next 24-48 hours and marks each one so it is reminded only once.
// It returns the number of reminders sent.
func SendAppointmentReminders(database *gorm.DB, cfg *config.Config, now time.Time) int {
	log.Println("[JOB] Starting appointment reminder job...")

	now = now.UTC()
	windowStart := now.Add(ReminderWindowStart)
	windowEnd := now.Add(ReminderWindowEnd)
	firstDay := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(windowEnd.Year(), windowEnd.Month(), windowEnd.Day(), 0, 0, 0, 0, time.UTC)

	// Narrow by date in SQL, then by exact start time below
	var appointments []models.Appointment
	err := database.Preload("Customer").Preload("Vehicle").Preload("Employee").
		Where("status = ?", models.AppointmentStatusUpcoming).
		Where("date >= ? AND date <= ?", firstDay, lastDay).
		Where("reminder_sent_at IS NULL").
		Find(&appointments).Error
	if err != nil {
		log.Printf("[JOB] Error fetching appointments for reminders: %v", err)
		return 0
	}

	sent := 0
	appURL := strings.TrimSuffix(cfg.AppURL, "/")
	for _, apt := range appointments {
		startsAt := apt.StartsAt()
		if startsAt.Before(windowStart) || startsAt.After(windowEnd) {
			continue
		}

		data := services.AppointmentReminderEmailData{
			CustomerName: apt.Customer.Name,
			ServiceName:  apt.ServiceName,
			VehicleName:  apt.Vehicle.DisplayName(),
			Date:         apt.Date.Format("Monday, January 2, 2006"),
			StartTime:    apt.StartTime,
			Link:         appURL + "/customer/my-appointments",
		}
		if apt.Employee != nil {
			data.EmployeeName = apt.Employee.Name
		}
		email := services.BuildAppointmentReminderEmail(apt.Customer.Email, data, apt.Customer.Language)

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("[JOB] Failed to send reminder for appointment %s: %v", apt.ID, err)
			continue
		}

		if err := database.Model(&models.Appointment{}).Where("id = ?", apt.ID).
			Update("reminder_sent_at", now).Error; err != nil {
			log.Printf("[JOB] Failed to mark reminder for appointment %s: %v", apt.ID, err)
			continue
		}
		sent++
	}

	log.Printf("[JOB] Appointment reminder job completed: %d sent", sent)
	return sent
}
