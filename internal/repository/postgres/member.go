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

type MemberStore struct {
	pool *pgxpool.Pool
}

func NewMemberStore(pool *pgxpool.Pool) *MemberStore {
	return &MemberStore{pool: pool}
}

func (s *MemberStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	query := `
		SELECT m.id, m.project_id, m.user_id, m.role, m.assigned_at, m.assigned_by,
		       pr.name, pr.email
		FROM project_members m
		LEFT JOIN profiles pr ON pr.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.assigned_at`

	rows, err := s.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]models.ProjectMember, 0)
	for rows.Next() {
		var (
			m     models.ProjectMember
			role  string
			name  *string
			email *string
		)
		err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &role, &m.AssignedAt, &m.AssignedBy, &name, &email)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.Role = rbac.ProjectRole(role)
		if name != nil && email != nil {
			m.User = &models.ProfileRef{Name: *name, Email: *email}
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}

func (s *MemberStore) GetRole(ctx context.Context, projectID, userID uuid.UUID) (rbac.ProjectRole, error) {
	query := `
		SELECT role FROM project_members
		WHERE project_id = $1 AND user_id = $2`

	var role string
	err := s.pool.QueryRow(ctx, query, projectID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rbac.ProjectNone, nil
		}
		return rbac.ProjectNone, fmt.Errorf("get member role: %w", err)
	}
	return rbac.ProjectRole(role), nil
}

// Add inserts a membership row. Callers check for an existing row first;
// the unique index on (project_id, user_id) catches the race between two
// admin sessions that both passed the check, surfacing ErrDuplicateMember
// instead of a raw constraint error.
func (s *MemberStore) Add(ctx context.Context, projectID, userID uuid.UUID, role rbac.ProjectRole, assignedBy uuid.UUID) (*models.ProjectMember, error) {
	query := `
		INSERT INTO project_members (project_id, user_id, role, assigned_at, assigned_by)
		VALUES ($1, $2, $3, now(), $4)
		RETURNING id, project_id, user_id, role, assigned_at, assigned_by`

	var (
		m       models.ProjectMember
		rawRole string
	)
	err := s.pool.QueryRow(ctx, query, projectID, userID, string(role), assignedBy).Scan(
		&m.ID,
		&m.ProjectID,
		&m.UserID,
		&rawRole,
		&m.AssignedAt,
		&m.AssignedBy,
	)
	if err != nil {
		if uniqueViolation(err) {
			return nil, repository.ErrDuplicateMember
		}
		return nil, fmt.Errorf("add member: %w", err)
	}
	m.Role = rbac.ProjectRole(rawRole)
	return &m, nil
}

func (s *MemberStore) UpdateRole(ctx context.Context, memberID uuid.UUID, role rbac.ProjectRole) error {
	query := `UPDATE project_members SET role = $2 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, memberID, string(role))
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *MemberStore) Remove(ctx context.Context, memberID uuid.UUID) error {
	query := `DELETE FROM project_members WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, memberID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
