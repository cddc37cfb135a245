package repositories

import (
	"errors"

	"github.com/bragboardhq/backend/internal/activity"
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	SetReaction(shout *models.ShoutOut, userID uint, kind string) (*models.Reaction, bool, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db     *gorm.DB
	engine *activity.Engine
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB, engine *activity.Engine) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db, engine: engine}
}

// SetReaction applies the toggle semantics for a user's reaction on a
// shout-out: same kind again removes it, a different kind updates the
// existing row in place, and no prior reaction creates one and notifies
// the author. The returned bool reports removal. Everything runs in one
// transaction with the notification insert.
func (r *PostgresReactionRepository) SetReaction(shout *models.ShoutOut, userID uint, kind string) (*models.Reaction, bool, error) {
	var reaction *models.Reaction
	removed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("shoutout_id = ? AND user_id = ?", shout.ID, userID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Kind == kind {
				removed = true
				return tx.Delete(&existing).Error
			}
			existing.Kind = kind
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			reaction = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := models.Reaction{ShoutoutID: shout.ID, UserID: userID, Kind: kind}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			reaction = &created
			return r.engine.OnReactionAdded(tx, shout, userID)
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	if removed {
		return nil, true, nil
	}

	// Reload with the user association for serialization
	var loaded models.Reaction
	if err := r.db.Preload("User").Preload("User.Department").First(&loaded, reaction.ID).Error; err != nil {
		return nil, false, err
	}
	return &loaded, false, nil
}
