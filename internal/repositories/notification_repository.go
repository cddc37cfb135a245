package repositories

import (
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// notificationPreloads pull in the full shout-out detail embedded in
// each notification
var notificationPreloads = []string{
	"Shoutout",
	"Shoutout.CreatedBy",
	"Shoutout.CreatedBy.Department",
	"Shoutout.Recipients.User",
	"Shoutout.Reactions.User",
	"Shoutout.Comments.User",
	"Shoutout.Attachments",
}

// NotificationRepository defines the interface for notification operations.
// Creation happens through the activity engine inside mutation
// transactions; this repository covers the reader API.
type NotificationRepository interface {
	GetByUserID(userID uint, unreadOnly bool) ([]models.Notification, error)
	GetNotificationByID(id uint) (*models.Notification, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(userID uint) error
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// GetByUserID retrieves a user's notifications newest first
func (r *PostgresNotificationRepository) GetByUserID(userID uint, unreadOnly bool) ([]models.Notification, error) {
	q := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	for _, preload := range notificationPreloads {
		q = q.Preload(preload)
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetNotificationByID retrieves a single notification without associations
func (r *PostgresNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetUnreadCount returns the number of unread notifications for a user
func (r *PostgresNotificationRepository) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks one notification read; repeating it is a no-op
func (r *PostgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true).Error
}

// MarkAllAsRead marks every unread notification of the user read
func (r *PostgresNotificationRepository) MarkAllAsRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
