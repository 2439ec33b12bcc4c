package services

import (
	"time"

	"autocare_portal_go/models"

	"gorm.io/gorm"
)

// RecentNotificationLimit caps the unread list rendered in the top bar
const RecentNotificationLimit = 5

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) GetUnreadNotifications(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("user_id = ? AND read_at IS NULL", userID).
		Order("created_at DESC").
		Limit(RecentNotificationLimit).
		Find(&notifications).Error
	return notifications, err
}

// ListNotifications returns the user's notifications, newest first
func (s *NotificationService) ListNotifications(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	q := s.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) MarkAsRead(notificationID, userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", now).Error
}

func (s *NotificationService) MarkAllAsRead(userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (s *NotificationService) GetNotificationCount(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) CreateNotification(notification *models.Notification) error {
	return s.DB.Create(notification).Error
}

// Notify is a shorthand for creating a notification addressed to one user
func (s *NotificationService) Notify(userID, notificationType, title, message, link string) error {
	return s.CreateNotification(&models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		LinkURL: link,
	})
}
