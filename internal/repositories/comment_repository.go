package repositories

import (
	"github.com/bragboardhq/backend/internal/activity"
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(shout *models.ShoutOut, comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByShoutOutID(shoutoutID uint) ([]models.Comment, error)
	DeleteComment(comment *models.Comment, actor *models.User) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db     *gorm.DB
	engine *activity.Engine
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB, engine *activity.Engine) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db, engine: engine}
}

// CreateComment inserts the comment and notifies the shout-out author
// in the same transaction, then reloads the user association.
func (r *PostgresCommentRepository) CreateComment(shout *models.ShoutOut, comment *models.Comment) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return r.engine.OnCommentAdded(tx, shout, comment.UserID)
	})
	if err != nil {
		return err
	}
	return r.db.Preload("User").Preload("User.Department").First(comment, comment.ID).Error
}

// GetCommentByID retrieves a comment with its author preloaded
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").Preload("User.Department").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByShoutOutID retrieves all comments for a shout-out in
// chronological order
func (r *PostgresCommentRepository) GetCommentsByShoutOutID(shoutoutID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").Preload("User.Department").
		Where("shoutout_id = ?", shoutoutID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes the comment and its reply subtree, recording the
// self-deletion audit in the same transaction.
func (r *PostgresCommentRepository) DeleteComment(comment *models.Comment, actor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.engine.OnCommentDeleted(tx, comment, actor); err != nil {
			return err
		}

		// Collect the reply subtree breadth-first; replies may nest
		// arbitrarily deep.
		ids := []uint{comment.ID}
		frontier := []uint{comment.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		return tx.Delete(&models.Comment{}, ids).Error
	})
}
