package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/repository"
)

type ContentStore struct {
	pool *pgxpool.Pool
}

func NewContentStore(pool *pgxpool.Pool) *ContentStore {
	return &ContentStore{pool: pool}
}

const contentSelect = `
	SELECT c.id, c.title, c.body, c.status, c.project_id, c.author_id,
	       c.tags, c.content_type, c.file_url, c.file_name, c.file_size,
	       c.is_template, c.template_id, c.published_at,
	       c.created_at, c.updated_at, pr.name, pr.email
	FROM content c
	LEFT JOIN profiles pr ON pr.id = c.author_id`

func scanContent(row pgx.Row) (*models.Content, error) {
	var (
		c           models.Content
		rawStatus   *string
		isTemplate  *bool
		authorName  *string
		authorEmail *string
	)
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Body,
		&rawStatus,
		&c.ProjectID,
		&c.AuthorID,
		&c.Tags,
		&c.ContentType,
		&c.FileURL,
		&c.FileName,
		&c.FileSize,
		&isTemplate,
		&c.TemplateID,
		&c.PublishedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&authorName,
		&authorEmail,
	)
	if err != nil {
		return nil, err
	}
	c.Status = models.NormalizeContentStatus(rawStatus)
	if isTemplate != nil {
		c.IsTemplate = *isTemplate
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if authorName != nil && authorEmail != nil {
		c.Author = &models.ProfileRef{Name: *authorName, Email: *authorEmail}
	}
	return &c, nil
}

func (s *ContentStore) listQuery(ctx context.Context, query string, arg any) ([]models.Content, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := make([]models.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content: %w", err)
	}

	return items, nil
}

func (s *ContentStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Content, error) {
	query := contentSelect + `
	WHERE c.author_id = $1
	ORDER BY c.updated_at DESC`
	return s.listQuery(ctx, query, authorID)
}

func (s *ContentStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Content, error) {
	query := contentSelect + `
	WHERE c.project_id = $1
	ORDER BY c.updated_at DESC`
	return s.listQuery(ctx, query, projectID)
}

func (s *ContentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	query := contentSelect + `
	WHERE c.id = $1`

	c, err := scanContent(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return c, nil
}

func (s *ContentStore) Create(ctx context.Context, authorID uuid.UUID, in repository.ContentCreate) (*models.Content, error) {
	query := `
		INSERT INTO content (title, body, status, project_id, author_id, tags,
		                     content_type, file_url, file_name, file_size,
		                     is_template, template_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query,
		in.Title, in.Body, string(in.Status), in.ProjectID, authorID, in.Tags,
		in.ContentType, in.FileURL, in.FileName, in.FileSize,
		in.IsTemplate, in.TemplateID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *ContentStore) Update(ctx context.Context, id uuid.UUID, patch repository.ContentPatch) (*models.Content, error) {
	// published_at is tri-state: untouched, stamped now, or cleared.
	query := `
		UPDATE content
		SET title        = COALESCE($2, title),
		    body         = COALESCE($3, body),
		    status       = COALESCE($4, status),
		    project_id   = COALESCE($5, project_id),
		    tags         = COALESCE($6, tags),
		    content_type = COALESCE($7, content_type),
		    published_at = CASE
		        WHEN $8::bool IS NULL THEN published_at
		        WHEN $8 THEN now()
		        ELSE NULL
		    END,
		    updated_at   = now()
		WHERE id = $1
		RETURNING id`

	var rawStatus *string
	if patch.Status != nil {
		v := string(*patch.Status)
		rawStatus = &v
	}
	var tags []string
	if patch.Tags != nil {
		tags = *patch.Tags
	}

	var updated uuid.UUID
	err := s.pool.QueryRow(ctx, query, id,
		patch.Title, patch.Body, rawStatus, patch.ProjectID, tags,
		patch.ContentType, patch.PublishedAt,
	).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update content: %w", err)
	}
	return s.GetByID(ctx, updated)
}

func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM content WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *ContentStore) CountForAuthor(ctx context.Context, authorID uuid.UUID, status *models.ContentStatus) (int64, error) {
	query := `SELECT count(*) FROM content WHERE author_id = $1 AND ($2::text IS NULL OR status = $2)`

	var rawStatus *string
	if status != nil {
		v := string(*status)
		rawStatus = &v
	}

	var n int64
	if err := s.pool.QueryRow(ctx, query, authorID, rawStatus).Scan(&n); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}
