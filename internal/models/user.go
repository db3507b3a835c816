package models

import (
	"time"
)

// Actor roles. Makers (Admin) create and submit campaigns; Checkers review
// them.
const (
	RoleAdmin   = "Admin"
	RoleChecker = "Checker"
)

// User represents an actor in the system
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(150);not null;unique;index"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(150)"`
	Role         string    `json:"role" gorm:"type:varchar(50);not null;index"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@collectflow.io"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// RegisterRequest represents a new-account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maker@collectflow.io"`
	Password string `json:"password" binding:"required,min=8" example:"secret123"`
	FullName string `json:"full_name" example:"New Maker"`
	Role     string `json:"role" binding:"required" example:"Admin"`
}

// AuthResponse is returned on successful login
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ToResponse converts a User to its public view
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
