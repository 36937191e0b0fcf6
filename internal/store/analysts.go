package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Analyst is one planning-team login. Matches the 'analysts' table.
type Analyst struct {
	ID           int
	Email        string
	PasswordHash string
	RefreshToken string
	TokenExpiry  time.Time
}

type AnalystStore struct {
	db *sql.DB
}

func NewAnalystStore(db *sql.DB) *AnalystStore {
	return &AnalystStore{db: db}
}

// Create registers a new analyst account.
func (s *AnalystStore) Create(ctx context.Context, a Analyst) error {
	query := `
		INSERT INTO analysts (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := s.db.QueryRowContext(ctx, query, a.Email, a.PasswordHash).Scan(&a.ID); err != nil {
		return fmt.Errorf("failed to register analyst: %w", err)
	}
	return nil
}

// GetByEmail finds an analyst for login.
func (s *AnalystStore) GetByEmail(ctx context.Context, email string) (*Analyst, error) {
	query := `
		SELECT id, email, password_hash, refresh_token, token_expiry
		FROM analysts
		WHERE email = $1
	`
	var a Analyst
	var token sql.NullString
	var expiry sql.NullTime

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &token, &expiry,
	)
	if err != nil {
		return nil, fmt.Errorf("analyst not found: %w", err)
	}

	if token.Valid {
		a.RefreshToken = token.String
	}
	if expiry.Valid {
		a.TokenExpiry = expiry.Time
	}
	return &a, nil
}

// SetRefreshToken records the active session token for an analyst.
func (s *AnalystStore) SetRefreshToken(ctx context.Context, email, token string, expiry time.Time) error {
	query := `
		UPDATE analysts
		SET refresh_token = $1, token_expiry = $2
		WHERE email = $3
	`
	if _, err := s.db.ExecContext(ctx, query, token, expiry, email); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}
