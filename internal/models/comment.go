package models

import "time"

// Comment belongs to a shout-out and may reply to another comment on
// the same shout-out (ParentID forms the tree).
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ShoutoutID uint      `json:"shoutout_id" gorm:"index;not null"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	User       User      `json:"user" gorm:"foreignKey:UserID"`
	Content    string    `json:"content" gorm:"size:500;not null"`
	ParentID   *uint     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a shout-out
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
