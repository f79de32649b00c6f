package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// AccountStore is the identity store. Sign-up and sign-in are its only
// callers; the rest of the application treats accounts as read-only.
type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) Create(ctx context.Context, email, passwordHash string) (*models.Account, error) {
	query := `
		INSERT INTO auth_users (email, password_hash, created_at)
		VALUES ($1, $2, now())
		RETURNING id, email, password_hash, created_at`

	var a models.Account
	err := s.pool.QueryRow(ctx, query, email, passwordHash).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &a, nil
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM auth_users
		WHERE email = $1`

	var a models.Account
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &a, nil
}
