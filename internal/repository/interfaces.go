// Package repository defines the contracts for the console's entity
// stores. Handlers and assemblers depend on these interfaces, never on
// the pgx implementations, so tests can substitute in-memory fakes.
//
// Conventions shared by every implementation:
//   - every method takes a context.Context; it is the request context,
//     so a disconnected client cancels the query;
//   - single-row Get methods return (nil, nil) when the row is absent;
//     absence is a normal outcome, not an error;
//   - Update and Delete return ErrNotFound when zero rows matched;
//   - every mutation stamps updated_at server-side;
//   - list methods return an empty slice, never nil, so JSON serializes
//     to [] rather than null.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
)

// AccountRepository is the identity store. It stands in for the hosted
// auth service: sign-up inserts here, sign-in reads here, and nothing
// else in the application writes to it. In particular, profile deletion
// does not revoke accounts.
type AccountRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// ProfilePatch carries the self-service and admin-editable profile
// fields. Nil means "leave unchanged".
type ProfilePatch struct {
	Name       *string
	AvatarURL  *string
	GlobalRole *rbac.GlobalRole
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// Create inserts the application-level record for an account. It is
	// idempotent: a concurrent duplicate insert resolves to the existing
	// row instead of erroring.
	Create(ctx context.Context, id uuid.UUID, email, name string, role rbac.GlobalRole) (*models.Profile, error)

	// List returns every profile, newest first. Users-screen only.
	List(ctx context.Context) ([]models.Profile, error)

	Update(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*models.Profile, error)

	// TouchLastLogin stamps last_login; failures are reported but must
	// not fail the sign-in that triggered them.
	TouchLastLogin(ctx context.Context, id uuid.UUID) error

	// Delete removes only the profile row. The account row and any
	// outstanding session survive.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
}

type ProjectRepository interface {
	// ListAll returns every project joined with its creator profile,
	// most recently updated first. Admin and super_admin branch.
	ListAll(ctx context.Context) ([]models.Project, error)

	// ListForUser returns only projects reachable through the user's
	// membership rows, each paired with the role granting access.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]MemberProject, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, name string, description *string, status models.ProjectStatus, createdBy uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForCreator powers the dashboard statistics. A nil status
	// counts every project the user created.
	CountForCreator(ctx context.Context, createdBy uuid.UUID, status *models.ProjectStatus) (int64, error)
}

// MemberProject is a project row reached through a membership, carrying
// the role that reached it.
type MemberProject struct {
	Project models.Project
	Role    rbac.ProjectRole
}

type MemberRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error)

	// GetRole returns the caller's role in a project, ProjectNone when
	// no membership row exists.
	GetRole(ctx context.Context, projectID, userID uuid.UUID) (rbac.ProjectRole, error)

	// Add inserts a membership row. The duplicate check happens before
	// this call; the unique index on (project_id, user_id) turns a lost
	// race into ErrDuplicateMember.
	Add(ctx context.Context, projectID, userID uuid.UUID, role rbac.ProjectRole, assignedBy uuid.UUID) (*models.ProjectMember, error)

	UpdateRole(ctx context.Context, memberID uuid.UUID, role rbac.ProjectRole) error
	Remove(ctx context.Context, memberID uuid.UUID) error
}

// ContentCreate is the payload for new content. AuthorID is stamped by
// the handler from the session, never taken from the client body.
type ContentCreate struct {
	Title       string
	Body        string
	Status      models.ContentStatus
	ProjectID   *uuid.UUID
	Tags        []string
	ContentType *string
	FileURL     *string
	FileName    *string
	FileSize    *int64
	IsTemplate  bool
	TemplateID  *uuid.UUID
}

type ContentPatch struct {
	Title       *string
	Body        *string
	Status      *models.ContentStatus
	ProjectID   *uuid.UUID
	Tags        *[]string
	ContentType *string
	PublishedAt *bool // true stamps published_at now, false clears it
}

type ContentRepository interface {
	// ListByAuthor is the non-privileged content screen: only the
	// caller's own items, most recently updated first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Content, error)

	// ListByProject returns a project's content joined with author
	// profiles, for callers who can view the project.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Content, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
	Create(ctx context.Context, authorID uuid.UUID, in ContentCreate) (*models.Content, error)
	Update(ctx context.Context, id uuid.UUID, patch ContentPatch) (*models.Content, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CountForAuthor(ctx context.Context, authorID uuid.UUID, status *models.ContentStatus) (int64, error)
}

type CommentRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Comment, error)
	Create(ctx context.Context, projectID, authorID uuid.UUID, body string) (*models.Comment, error)
}
