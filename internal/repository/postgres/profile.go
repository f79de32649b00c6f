package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

const profileColumns = `id, email, name, avatar_url, global_role, created_at, updated_at, last_login`

// scanProfile reads one row and normalizes the nullable global_role.
// This is the single place NULL roles become rbac.GlobalUser; nothing
// above the repository ever sees a missing role.
func scanProfile(row pgx.Row) (*models.Profile, error) {
	var (
		p       models.Profile
		rawRole *string
	)
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.AvatarURL,
		&rawRole,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	p.GlobalRole = rbac.NormalizeGlobalRole(rawRole)
	return &p, nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Create inserts the profile for an account. ON CONFLICT DO NOTHING plus
// a re-read makes lazy creation idempotent: when two sessions race on
// first sign-in, the loser silently adopts the winner's row.
func (s *ProfileStore) Create(ctx context.Context, id uuid.UUID, email, name string, role rbac.GlobalRole) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, email, name, global_role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (id) DO NOTHING`

	if _, err := s.pool.Exec(ctx, query, id, email, name, string(role)); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("insert profile: row missing after upsert")
	}
	return p, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

func (s *ProfileStore) Update(ctx context.Context, id uuid.UUID, patch repository.ProfilePatch) (*models.Profile, error) {
	// COALESCE keeps columns whose patch field is nil. updated_at is
	// stamped on every call regardless of which fields changed.
	query := `
		UPDATE profiles
		SET name        = COALESCE($2, name),
		    avatar_url  = COALESCE($3, avatar_url),
		    global_role = COALESCE($4, global_role),
		    updated_at  = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	var rawRole *string
	if patch.GlobalRole != nil {
		v := string(*patch.GlobalRole)
		rawRole = &v
	}

	p, err := scanProfile(s.pool.QueryRow(ctx, query, id, patch.Name, patch.AvatarURL, rawRole))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE profiles SET last_login = now() WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("touch last_login: %w", err)
	}
	return nil
}

// Delete removes only the profile row. The auth_users row and any JWT
// already issued survive; the user simply has no profile until one is
// lazily recreated on their next resolved request.
func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
