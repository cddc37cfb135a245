package models

import "time"

// Attachment records an uploaded image hosted externally; only the
// returned URL is stored, never the bytes.
type Attachment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ShoutoutID uint      `json:"shoutout_id" gorm:"index;not null"`
	FileURL    string    `json:"file_url" gorm:"size:500;not null"`
	FileName   string    `json:"file_name" gorm:"size:255;not null"`
	FileType   string    `json:"file_type" gorm:"size:50;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
