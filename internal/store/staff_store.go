// internal/store/staff_store.go
// Staff account data access (judge/secretary/organizer/admin logins).

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"o-event/internal/models"
)

// StaffStore handles StaffUser data access.
type StaffStore struct {
	db *sql.DB
}

// NewStaffStore creates a new staff store.
func NewStaffStore(db *sql.DB) *StaffStore {
	return &StaffStore{db: db}
}

// Create inserts a new staff account.
func (s *StaffStore) Create(ctx context.Context, u *models.StaffUser) error {
	query := `
		INSERT INTO staff_users (
			id, email, password_hash, full_name, role,
			email_verified, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Role,
		u.EmailVerified, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// GetByEmail retrieves a staff account by email.
func (s *StaffStore) GetByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, email_verified, created_at, updated_at
		FROM staff_users WHERE email = ?
	`
	var u models.StaffUser
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("staff account not found")
	}
	return &u, err
}

// GetByID retrieves a staff account by primary key.
func (s *StaffStore) GetByID(ctx context.Context, id string) (*models.StaffUser, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, email_verified, created_at, updated_at
		FROM staff_users WHERE id = ?
	`
	var u models.StaffUser
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("staff account not found")
	}
	return &u, err
}

// ExistsByEmail checks if a staff account exists with the given email.
func (s *StaffStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM staff_users WHERE email = ?)`
	var exists bool
	err := s.db.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

// UpdatePassword updates a staff account's password hash.
func (s *StaffStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE staff_users SET password_hash = ?, updated_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	return err
}
