package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentdesk/contentdesk/internal/models"
)

type CommentStore struct {
	pool *pgxpool.Pool
}

func NewCommentStore(pool *pgxpool.Pool) *CommentStore {
	return &CommentStore{pool: pool}
}

func (s *CommentStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.project_id, c.author_id, c.body, c.created_at,
		       pr.name, pr.email
		FROM project_comments c
		LEFT JOIN profiles pr ON pr.id = c.author_id
		WHERE c.project_id = $1
		ORDER BY c.created_at DESC`

	rows, err := s.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var (
			c     models.Comment
			name  *string
			email *string
		)
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.AuthorID, &c.Body, &c.CreatedAt, &name, &email); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if name != nil && email != nil {
			c.Author = &models.ProfileRef{Name: *name, Email: *email}
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

func (s *CommentStore) Create(ctx context.Context, projectID, authorID uuid.UUID, body string) (*models.Comment, error) {
	query := `
		INSERT INTO project_comments (project_id, author_id, body, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, project_id, author_id, body, created_at`

	var c models.Comment
	err := s.pool.QueryRow(ctx, query, projectID, authorID, body).Scan(
		&c.ID,
		&c.ProjectID,
		&c.AuthorID,
		&c.Body,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}
