package models

import "time"

// Report statuses
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// Report flags a shout-out for moderation. A reporter may hold at most
// one open report per shout-out; resolved reports may accumulate.
type Report struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ShoutoutID   uint       `json:"shoutout_id" gorm:"index;not null"`
	Shoutout     ShoutOut   `json:"shoutout" gorm:"foreignKey:ShoutoutID"`
	ReporterID   uint       `json:"reporter_id" gorm:"index;not null"`
	Reporter     User       `json:"reporter" gorm:"foreignKey:ReporterID"`
	Reason       *string    `json:"reason,omitempty" gorm:"size:500"`
	Status       string     `json:"status" gorm:"size:20;not null;default:'open'"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedByID *uint      `json:"resolved_by_id,omitempty" gorm:"index"`
	ResolvedBy   *User      `json:"resolved_by,omitempty" gorm:"foreignKey:ResolvedByID"`
}

// CreateReportRequest defines the request body for reporting a shout-out.
// The reason is optional; when supplied it must be at least 5 characters
// after trimming, which the handler checks so that whitespace-only
// values count as empty.
type CreateReportRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
