package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account holder (PostgreSQL)
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex"` // Usernames are unique across all users
	Email     string    `json:"email" gorm:"size:254"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Password  string    `json:"-"` // Store hashed password, ignore for JSON serialization
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the public-facing extras of a user, created alongside the User
type Profile struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	UserID            uint      `json:"-" gorm:"uniqueIndex"`
	Bio               string    `json:"bio" gorm:"size:500"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"-"`
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=2,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName        string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

// LoginRequest defines the request body for username/password login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the request body for exchanging a refresh token
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating account fields.
// Omitted or empty fields are not modified.
type UpdateProfileRequest struct {
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

// UpdateProfilePictureRequest defines the request body for updating bio and
// picture. Omitted or empty fields are not modified.
type UpdateProfilePictureRequest struct {
	Bio               string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}
