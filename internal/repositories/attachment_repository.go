package repositories

import (
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// AttachmentRepository defines the interface for attachment data operations
type AttachmentRepository interface {
	CreateAttachment(attachment *models.Attachment) error
}

// PostgresAttachmentRepository implements AttachmentRepository for PostgreSQL
type PostgresAttachmentRepository struct {
	db *gorm.DB
}

// NewPostgresAttachmentRepository creates a new PostgresAttachmentRepository
func NewPostgresAttachmentRepository(db *gorm.DB) *PostgresAttachmentRepository {
	return &PostgresAttachmentRepository{db: db}
}

// CreateAttachment inserts a new attachment record
func (r *PostgresAttachmentRepository) CreateAttachment(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}
