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

type ProjectStore struct {
	pool *pgxpool.Pool
}

func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

// scanProject normalizes the nullable status and folds the left-joined
// creator profile into Creator. Creator is nil when the creator's
// profile row is gone; profiles are deletable, projects keep the
// dangling reference.
func scanProject(row pgx.Row) (*models.Project, error) {
	var (
		p            models.Project
		rawStatus    *string
		creatorName  *string
		creatorEmail *string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&rawStatus,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
		&creatorName,
		&creatorEmail,
	)
	if err != nil {
		return nil, err
	}
	p.Status = models.NormalizeProjectStatus(rawStatus)
	if creatorName != nil && creatorEmail != nil {
		p.Creator = &models.ProfileRef{Name: *creatorName, Email: *creatorEmail}
	}
	return &p, nil
}

const projectSelect = `
	SELECT p.id, p.name, p.description, p.status, p.created_by,
	       p.created_at, p.updated_at, pr.name, pr.email
	FROM projects p
	LEFT JOIN profiles pr ON pr.id = p.created_by`

func (s *ProjectStore) ListAll(ctx context.Context) ([]models.Project, error) {
	query := projectSelect + `
	ORDER BY p.updated_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// ListForUser walks the user's membership rows to their projects. The
// role travels with each row so the assembler can annotate without a
// second query.
func (s *ProjectStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.MemberProject, error) {
	query := `
		SELECT p.id, p.name, p.description, p.status, p.created_by,
		       p.created_at, p.updated_at, pr.name, pr.email, m.role
		FROM project_members m
		JOIN projects p ON p.id = m.project_id
		LEFT JOIN profiles pr ON pr.id = p.created_by
		WHERE m.user_id = $1
		ORDER BY p.updated_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list member projects: %w", err)
	}
	defer rows.Close()

	out := make([]repository.MemberProject, 0)
	for rows.Next() {
		var (
			p            models.Project
			rawStatus    *string
			creatorName  *string
			creatorEmail *string
			role         string
		)
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&rawStatus,
			&p.CreatedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
			&creatorName,
			&creatorEmail,
			&role,
		)
		if err != nil {
			return nil, fmt.Errorf("scan member project: %w", err)
		}
		p.Status = models.NormalizeProjectStatus(rawStatus)
		if creatorName != nil && creatorEmail != nil {
			p.Creator = &models.ProfileRef{Name: *creatorName, Email: *creatorEmail}
		}
		out = append(out, repository.MemberProject{Project: p, Role: rbac.ProjectRole(role)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member projects: %w", err)
	}

	return out, nil
}

func (s *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := projectSelect + `
	WHERE p.id = $1`

	p, err := scanProject(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *ProjectStore) Create(ctx context.Context, name string, description *string, status models.ProjectStatus, createdBy uuid.UUID) (*models.Project, error) {
	query := `
		INSERT INTO projects (name, description, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query, name, description, string(status), createdBy).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *ProjectStore) Update(ctx context.Context, id uuid.UUID, patch repository.ProjectPatch) (*models.Project, error) {
	query := `
		UPDATE projects
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    status      = COALESCE($4, status),
		    updated_at  = now()
		WHERE id = $1
		RETURNING id`

	var rawStatus *string
	if patch.Status != nil {
		v := string(*patch.Status)
		rawStatus = &v
	}

	var updated uuid.UUID
	err := s.pool.QueryRow(ctx, query, id, patch.Name, patch.Description, rawStatus).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return s.GetByID(ctx, updated)
}

func (s *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *ProjectStore) CountForCreator(ctx context.Context, createdBy uuid.UUID, status *models.ProjectStatus) (int64, error) {
	query := `SELECT count(*) FROM projects WHERE created_by = $1 AND ($2::text IS NULL OR status = $2)`

	var rawStatus *string
	if status != nil {
		v := string(*status)
		rawStatus = &v
	}

	var n int64
	if err := s.pool.QueryRow(ctx, query, createdBy, rawStatus).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
