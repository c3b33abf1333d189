package models

import "time"

// User is the account row stored in PostgreSQL. Only the anonymous profile
// is ever returned to clients; the password hash stays server-side.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}
