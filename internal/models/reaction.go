package models

import "time"

// Reaction kinds
const (
	ReactionLike = "like"
	ReactionClap = "clap"
	ReactionStar = "star"
)

// Reaction is a single user's reaction to a shout-out. The unique index
// on (shoutout_id, user_id) keeps it to at most one per user even when
// two requests race.
type Reaction struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ShoutoutID uint      `json:"shoutout_id" gorm:"not null;uniqueIndex:idx_reaction_shoutout_user"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reaction_shoutout_user"`
	User       User      `json:"user" gorm:"foreignKey:UserID"`
	Kind       string    `json:"kind" gorm:"size:16;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReactionRequest defines the request body for reacting to a shout-out
type ReactionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=like clap star"`
}
