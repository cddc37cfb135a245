package models

import "time"

// Department groups users for scoping shout-outs and lookups
type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateDepartmentRequest defines the request body for creating a department
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// DefaultDepartments are seeded on first startup when the table is empty
var DefaultDepartments = []string{
	"HR",
	"Finance",
	"Marketing",
	"Product Development",
	"Quality Assurance",
	"Security",
}
