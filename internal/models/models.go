// Package models contains the row types the repositories read and write.
// Models are dumb data carriers: they mirror tables, they do not decide
// anything. Nullable enum columns are normalized once, at the repository
// read boundary, so everything above this package sees total values.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/contentdesk/contentdesk/internal/rbac"
)

// Account is a row in the identity store (auth_users). It holds the
// credentials and nothing else; the application-level record is Profile.
// Deleting a Profile never touches the Account: credentials survive,
// which is a documented limitation of profile deletion.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the application-level user record, keyed by the account id.
// Created lazily on first sign-in when absent.
type Profile struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	AvatarURL  *string         `json:"avatar_url"`
	GlobalRole rbac.GlobalRole `json:"global_role"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	LastLogin  *time.Time      `json:"last_login"`
}

// ProfileRef is the subset of a profile joined onto other rows
// (project creator, content author).
type ProfileRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
	ProjectDraft    ProjectStatus = "draft"
)

// NormalizeProjectStatus maps the nullable column onto a valid status.
// NULL and unknown values read as draft.
func NormalizeProjectStatus(raw *string) ProjectStatus {
	if raw == nil {
		return ProjectDraft
	}
	switch ProjectStatus(*raw) {
	case ProjectActive:
		return ProjectActive
	case ProjectArchived:
		return ProjectArchived
	default:
		return ProjectDraft
	}
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectArchived, ProjectDraft:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedBy   uuid.UUID     `json:"created_by"`
	Creator     *ProfileRef   `json:"created_by_profile,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProjectMember links a project and a user with exactly one role.
// At most one row may exist per (project, user) pair; the repository
// consumer checks before writing and the table carries a unique index
// as the backstop.
type ProjectMember struct {
	ID         uuid.UUID        `json:"id"`
	ProjectID  uuid.UUID        `json:"project_id"`
	UserID     uuid.UUID        `json:"user_id"`
	Role       rbac.ProjectRole `json:"role"`
	AssignedAt time.Time        `json:"assigned_at"`
	AssignedBy uuid.UUID        `json:"assigned_by"`
	User       *ProfileRef      `json:"user_profile,omitempty"`
}

type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentReview    ContentStatus = "review"
	ContentPublished ContentStatus = "published"
	ContentArchived  ContentStatus = "archived"
)

// NormalizeContentStatus maps the nullable column onto a valid status.
// NULL and unknown values read as draft.
func NormalizeContentStatus(raw *string) ContentStatus {
	if raw == nil {
		return ContentDraft
	}
	switch ContentStatus(*raw) {
	case ContentReview:
		return ContentReview
	case ContentPublished:
		return ContentPublished
	case ContentArchived:
		return ContentArchived
	default:
		return ContentDraft
	}
}

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentDraft, ContentReview, ContentPublished, ContentArchived:
		return true
	}
	return false
}

// Content is a markdown document, optionally attached to one project.
// Project-less content is private to its author.
type Content struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	Status      ContentStatus `json:"status"`
	ProjectID   *uuid.UUID    `json:"project_id"`
	AuthorID    uuid.UUID     `json:"author_id"`
	Author      *ProfileRef   `json:"author_profile,omitempty"`
	Tags        []string      `json:"tags"`
	ContentType *string       `json:"content_type"`
	FileURL     *string       `json:"file_url"`
	FileName    *string       `json:"file_name"`
	FileSize    *int64        `json:"file_size"`
	IsTemplate  bool          `json:"is_template"`
	TemplateID  *uuid.UUID    `json:"template_id"`
	PublishedAt *time.Time    `json:"published_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Comment is a remark on a project, gated by the comment capability.
type Comment struct {
	ID        uuid.UUID   `json:"id"`
	ProjectID uuid.UUID   `json:"project_id"`
	AuthorID  uuid.UUID   `json:"author_id"`
	Body      string      `json:"body"`
	Author    *ProfileRef `json:"author_profile,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
