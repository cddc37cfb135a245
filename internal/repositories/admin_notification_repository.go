package repositories

import (
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// AdminNotificationRepository defines the reader interface for the
// moderator audit feed; rows are created by the activity engine.
type AdminNotificationRepository interface {
	ListAdminNotifications(eventType *string, limit, offset int) ([]models.AdminNotification, error)
}

// PostgresAdminNotificationRepository implements AdminNotificationRepository for PostgreSQL
type PostgresAdminNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresAdminNotificationRepository creates a new PostgresAdminNotificationRepository
func NewPostgresAdminNotificationRepository(db *gorm.DB) *PostgresAdminNotificationRepository {
	return &PostgresAdminNotificationRepository{db: db}
}

// ListAdminNotifications retrieves audit rows newest first, optionally
// filtered by event type
func (r *PostgresAdminNotificationRepository) ListAdminNotifications(eventType *string, limit, offset int) ([]models.AdminNotification, error) {
	q := r.db.Preload("Actor").Order("created_at DESC")
	if eventType != nil {
		q = q.Where("event_type = ?", *eventType)
	}

	var notifications []models.AdminNotification
	if err := q.Offset(offset).Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
