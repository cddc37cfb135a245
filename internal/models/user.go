package models

import "time"

// User represents an employee account
type User struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Email        string      `json:"email" gorm:"size:255;uniqueIndex;not null"`
	FullName     string      `json:"full_name" gorm:"size:255;not null"`
	IsAdmin      bool        `json:"is_admin" gorm:"not null;default:false"`
	AvatarURL    *string     `json:"avatar_url,omitempty" gorm:"size:500"`
	DepartmentID *uint       `json:"department_id,omitempty" gorm:"index"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time   `json:"created_at"`
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FullName     string `json:"full_name" validate:"required,min=1,max=255"`
	Password     string `json:"password" validate:"required,password"`
	DepartmentID *uint  `json:"department_id,omitempty"`
	AdminCode    string `json:"admin_code,omitempty"`
}

// LoginRequest defines the request body for email/password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the request body for refreshing a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPairResponse is returned by login and refresh
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UpdateProfileRequest defines the request body for PATCH /users/me.
// Pointer fields distinguish "not supplied" from "set to empty".
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	DepartmentID *uint   `json:"department_id,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty" validate:"omitempty,max=500"`
}

// ChangePasswordRequest defines the request body for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}
