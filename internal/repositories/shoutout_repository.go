package repositories

import (
	"github.com/bragboardhq/backend/internal/activity"
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// detailPreloads are the associations needed to serialize a full shout-out
var detailPreloads = []string{
	"CreatedBy",
	"CreatedBy.Department",
	"Recipients.User",
	"Reactions.User",
	"Comments.User",
	"Attachments",
}

// ShoutOutRepository defines the interface for shout-out data operations.
// Mutating composites run inside one transaction together with the
// activity engine's notification inserts.
type ShoutOutRepository interface {
	CreateWithRecipients(shout *models.ShoutOut, recipientIDs []uint) error
	GetShoutOutByID(id uint) (*models.ShoutOut, error)
	GetDetailedByID(id uint) (*models.ShoutOut, error)
	ListShoutOuts(filter models.ShoutOutFilter) ([]models.ShoutOut, error)
	DeleteCascade(shout *models.ShoutOut, actor *models.User) error
}

// PostgresShoutOutRepository implements ShoutOutRepository for PostgreSQL
type PostgresShoutOutRepository struct {
	db     *gorm.DB
	engine *activity.Engine
}

// NewPostgresShoutOutRepository creates a new PostgresShoutOutRepository
func NewPostgresShoutOutRepository(db *gorm.DB, engine *activity.Engine) *PostgresShoutOutRepository {
	return &PostgresShoutOutRepository{db: db, engine: engine}
}

// CreateWithRecipients creates the shout-out, its recipient links and the
// recipient notifications in one transaction. The recipient set is
// deduplicated; order is irrelevant.
func (r *PostgresShoutOutRepository) CreateWithRecipients(shout *models.ShoutOut, recipientIDs []uint) error {
	unique := make([]uint, 0, len(recipientIDs))
	seen := make(map[uint]struct{}, len(recipientIDs))
	for _, rid := range recipientIDs {
		if _, dup := seen[rid]; dup {
			continue
		}
		seen[rid] = struct{}{}
		unique = append(unique, rid)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shout).Error; err != nil {
			return err
		}
		for _, rid := range unique {
			link := &models.ShoutOutRecipient{ShoutoutID: shout.ID, UserID: rid}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return r.engine.OnShoutOutCreated(tx, shout, unique, shout.CreatedByID)
	})
}

// GetShoutOutByID retrieves a shout-out without associations
func (r *PostgresShoutOutRepository) GetShoutOutByID(id uint) (*models.ShoutOut, error) {
	var shout models.ShoutOut
	if err := r.db.First(&shout, id).Error; err != nil {
		return nil, err
	}
	return &shout, nil
}

// GetDetailedByID retrieves a shout-out with every association needed
// for serialization
func (r *PostgresShoutOutRepository) GetDetailedByID(id uint) (*models.ShoutOut, error) {
	var shout models.ShoutOut
	q := r.db
	for _, preload := range detailPreloads {
		q = q.Preload(preload)
	}
	if err := q.First(&shout, id).Error; err != nil {
		return nil, err
	}
	return &shout, nil
}

// ListShoutOuts retrieves shout-outs matching the filter, newest first
func (r *PostgresShoutOutRepository) ListShoutOuts(filter models.ShoutOutFilter) ([]models.ShoutOut, error) {
	q := r.db.Model(&models.ShoutOut{})
	for _, preload := range detailPreloads {
		q = q.Preload(preload)
	}
	if filter.DepartmentID != nil {
		q = q.Where("shoutouts.department_id = ?", *filter.DepartmentID)
	}
	if filter.SenderID != nil {
		q = q.Where("shoutouts.created_by_id = ?", *filter.SenderID)
	}
	if filter.RecipientID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM shoutout_recipients WHERE shoutout_recipients.shoutout_id = shoutouts.id AND shoutout_recipients.user_id = ?)", *filter.RecipientID)
	}
	if filter.StartDate != nil {
		q = q.Where("shoutouts.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("shoutouts.created_at <= ?", *filter.EndDate)
	}
	if filter.HasAttachments != nil {
		cond := "EXISTS (SELECT 1 FROM attachments WHERE attachments.shoutout_id = shoutouts.id)"
		if !*filter.HasAttachments {
			cond = "NOT " + cond
		}
		q = q.Where(cond)
	}

	var shouts []models.ShoutOut
	err := q.Order("shoutouts.created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&shouts).Error
	if err != nil {
		return nil, err
	}
	return shouts, nil
}

// DeleteCascade removes the shout-out and every dependent row in one
// transaction, children before parent. Admin notifications go first
// because they may reference either the shout-out or one of its
// reports. The self-deletion audit row is written before the purge and
// carries no shout-out reference, so it survives it.
func (r *PostgresShoutOutRepository) DeleteCascade(shout *models.ShoutOut, actor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.engine.OnShoutOutDeleted(tx, shout, actor); err != nil {
			return err
		}

		var reportIDs []uint
		if err := tx.Model(&models.Report{}).Where("shoutout_id = ?", shout.ID).Pluck("id", &reportIDs).Error; err != nil {
			return err
		}
		adminQ := tx.Where("shoutout_id = ?", shout.ID)
		if len(reportIDs) > 0 {
			adminQ = tx.Where("shoutout_id = ? OR report_id IN ?", shout.ID, reportIDs)
		}
		if err := adminQ.Delete(&models.AdminNotification{}).Error; err != nil {
			return err
		}

		for _, child := range []interface{}{
			&models.Report{},
			&models.Notification{},
			&models.Comment{},
			&models.Reaction{},
			&models.Attachment{},
			&models.ShoutOutRecipient{},
		} {
			if err := tx.Where("shoutout_id = ?", shout.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.ShoutOut{}, shout.ID).Error
	})
}
