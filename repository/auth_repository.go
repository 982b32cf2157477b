package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/appadook/appadook-portfolio-next/db"
	"github.com/appadook/appadook-portfolio-next/models"
)

// AuthRepository handles database operations for users and sessions
type AuthRepository struct{}

// NewAuthRepository creates a new AuthRepository
func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

// Ensure AuthRepository implements AuthRepositoryInterface
var _ AuthRepositoryInterface = (*AuthRepository)(nil)

// InsertUser creates a new admin account
func (r *AuthRepository) InsertUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := models.User{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash}
	query := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := db.DB.QueryRowContext(ctx, query, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	err := db.DB.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// InsertSession stores a new session token
func (r *AuthRepository) InsertSession(ctx context.Context, session models.Session) error {
	query := `INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := db.DB.ExecContext(ctx, query, session.Token, session.UserID, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a non-expired session by token
func (r *AuthRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	query := `SELECT token, user_id, expires_at FROM sessions WHERE token = $1 AND expires_at > NOW()`
	err := db.DB.QueryRowContext(ctx, query, token).Scan(&session.Token, &session.UserID, &session.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// TouchSession extends a session's expiry (keep-alive)
func (r *AuthRepository) TouchSession(ctx context.Context, token string, expiresAt time.Time) error {
	result, err := db.DB.ExecContext(ctx, `UPDATE sessions SET expires_at = $2 WHERE token = $1`, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check touch result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSession removes a session (logout)
func (r *AuthRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions purges expired sessions and returns how many were removed
func (r *AuthRepository) DeleteExpiredSessions(ctx context.Context) (int, error) {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check sweep result: %w", err)
	}
	return int(affected), nil
}
