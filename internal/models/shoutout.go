package models

import "time"

// ShoutOut is a public praise message tagging one or more coworkers.
// All dependent rows (recipients, reactions, comments, attachments,
// reports and notifications) are removed together with it.
type ShoutOut struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	Content      string              `json:"content" gorm:"size:1000;not null"`
	CreatedAt    time.Time           `json:"created_at"`
	CreatedByID  uint                `json:"created_by_id" gorm:"index;not null"`
	CreatedBy    User                `json:"created_by" gorm:"foreignKey:CreatedByID"`
	DepartmentID *uint               `json:"department_id,omitempty" gorm:"index"`
	Recipients   []ShoutOutRecipient `json:"recipients,omitempty" gorm:"foreignKey:ShoutoutID"`
	Reactions    []Reaction          `json:"reactions,omitempty" gorm:"foreignKey:ShoutoutID"`
	Comments     []Comment           `json:"comments,omitempty" gorm:"foreignKey:ShoutoutID"`
	Attachments  []Attachment        `json:"attachments,omitempty" gorm:"foreignKey:ShoutoutID"`
}

func (ShoutOut) TableName() string { return "shoutouts" }

// ShoutOutRecipient links a shout-out to a tagged user. Set semantics:
// the composite primary key rules out duplicate tags.
type ShoutOutRecipient struct {
	ShoutoutID uint `json:"shoutout_id" gorm:"primaryKey;autoIncrement:false"`
	UserID     uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User       User `json:"user" gorm:"foreignKey:UserID"`
}

func (ShoutOutRecipient) TableName() string { return "shoutout_recipients" }

// CreateShoutOutRequest defines the request body for posting a shout-out
type CreateShoutOutRequest struct {
	Content      string `json:"content" validate:"required,min=1,max=1000"`
	DepartmentID *uint  `json:"department_id,omitempty"`
	RecipientIDs []uint `json:"recipient_ids" validate:"required,min=1,dive,gt=0"`
}

// ShoutOutFilter collects the optional query filters for listing shout-outs
type ShoutOutFilter struct {
	DepartmentID   *uint
	SenderID       *uint
	RecipientID    *uint
	StartDate      *time.Time
	EndDate        *time.Time
	HasAttachments *bool
	Limit          int
	Offset         int
}
