package models

import (
	"time"
)

// Roles carried in bearer tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered bidder or administrator.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	FirstName    string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Role         string    `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Session is what a successful login hands back to the caller.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims are the verified contents of a bearer token.
type Claims struct {
	TokenID   string
	UserID    string
	Role      string
	ExpiresAt time.Time
}
