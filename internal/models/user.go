// internal/models/user.go
// Staff accounts and authentication — judge, secretary, organizer logins.

package models

import (
	"time"
)

// StaffUser represents an event-staff login account. Unlike a Competitor
// (a registered runner), a StaffUser operates the admin/ingestion boundary.
type StaffUser struct {
	ID            string    `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"` // never exposed in JSON
	FullName      string    `json:"full_name" db:"full_name"`
	Role          StaffRole `json:"role" db:"role"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// StaffRole defines access levels over event administration.
type StaffRole string

const (
	RoleJudge     StaffRole = "judge"
	RoleSecretary StaffRole = "secretary"
	RoleOrganizer StaffRole = "organizer"
	RoleAdmin     StaffRole = "admin"
)

// TokenPair represents JWT access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginRequest represents authentication credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest represents new staff account data.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
}
