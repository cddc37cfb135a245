package models

import "time"

// Notification tells a user a shout-out concerns them. The unique index
// on (user_id, shoutout_id) enforces the dedup invariant at the storage
// layer; the activity engine checks it at the application layer too.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_notification_user_shoutout"`
	ShoutoutID uint      `json:"shoutout_id" gorm:"not null;uniqueIndex:idx_notification_user_shoutout"`
	Shoutout   ShoutOut  `json:"shoutout" gorm:"foreignKey:ShoutoutID"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}
