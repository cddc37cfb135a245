package models

import "time"

// AdminNotification event types
const (
	EventShoutOutDeleted = "shoutout_deleted"
	EventCommentDeleted  = "comment_deleted"
	EventReportSubmitted = "report_submitted"
)

// AdminNotification is a moderator-facing audit record. Unlike user
// notifications there is no uniqueness rule: every qualifying event
// produces a new row.
type AdminNotification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EventType  string    `json:"event_type" gorm:"size:50;index;not null"`
	Message    string    `json:"message" gorm:"size:500;not null"`
	ActorID    uint      `json:"actor_id" gorm:"not null"`
	Actor      User      `json:"actor" gorm:"foreignKey:ActorID"`
	ShoutoutID *uint     `json:"shoutout_id,omitempty"`
	ReportID   *uint     `json:"report_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
