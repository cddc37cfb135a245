package repositories

import (
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// UserCount pairs a user id with an aggregate count
type UserCount struct {
	UserID uint
	Count  int64
}

// StatsRepository defines the aggregate queries behind admin metrics
// and the leaderboard
type StatsRepository interface {
	TopContributors(limit int) ([]UserCount, error)
	MostTagged(limit int) ([]UserCount, error)
	SentCounts() ([]UserCount, error)
	ReceivedCounts() ([]UserCount, error)
}

// PostgresStatsRepository implements StatsRepository for PostgreSQL
type PostgresStatsRepository struct {
	db *gorm.DB
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository
func NewPostgresStatsRepository(db *gorm.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// TopContributors returns the users who sent the most shout-outs
func (r *PostgresStatsRepository) TopContributors(limit int) ([]UserCount, error) {
	var rows []UserCount
	err := r.db.Model(&models.ShoutOut{}).
		Select("created_by_id AS user_id, COUNT(id) AS count").
		Group("created_by_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// MostTagged returns the users most often tagged as recipients
func (r *PostgresStatsRepository) MostTagged(limit int) ([]UserCount, error) {
	var rows []UserCount
	err := r.db.Model(&models.ShoutOutRecipient{}).
		Select("user_id, COUNT(shoutout_id) AS count").
		Group("user_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// SentCounts returns shout-outs sent per user
func (r *PostgresStatsRepository) SentCounts() ([]UserCount, error) {
	var rows []UserCount
	err := r.db.Model(&models.ShoutOut{}).
		Select("created_by_id AS user_id, COUNT(id) AS count").
		Group("created_by_id").
		Scan(&rows).Error
	return rows, err
}

// ReceivedCounts returns shout-outs received per user
func (r *PostgresStatsRepository) ReceivedCounts() ([]UserCount, error) {
	var rows []UserCount
	err := r.db.Model(&models.ShoutOutRecipient{}).
		Select("user_id, COUNT(shoutout_id) AS count").
		Group("user_id").
		Scan(&rows).Error
	return rows, err
}
