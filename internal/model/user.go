package model

import "time"

// Role is the coarse caller role used by the capability policy.
type Role string

const (
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
)

// User is a platform account. Password hashes never leave the server.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
