package models

import "time"

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an open sign-in of a user
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"access_token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RecoveryToken is an issued password recovery link. It is consumed on first use.
type RecoveryToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
