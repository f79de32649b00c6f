package console

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/contentdesk/contentdesk/internal/identity"
	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// In-memory fakes over the repository contracts. They follow the same
// conventions as the pgx stores: (nil, nil) for missing rows, empty
// slices from lists, ErrNotFound from mutations on absent rows.

type fakeProjectRepo struct {
	projects []models.Project
	members  *fakeMemberRepo
}

func (f *fakeProjectRepo) ListAll(context.Context) ([]models.Project, error) {
	return append([]models.Project{}, f.projects...), nil
}

func (f *fakeProjectRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]repository.MemberProject, error) {
	out := make([]repository.MemberProject, 0)
	for _, p := range f.projects {
		for _, m := range f.members.rows {
			if m.ProjectID == p.ID && m.UserID == userID {
				out = append(out, repository.MemberProject{Project: p, Role: m.Role})
			}
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) Create(_ context.Context, name string, description *string, status models.ProjectStatus, createdBy uuid.UUID) (*models.Project, error) {
	p := models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Status:      status,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, id uuid.UUID, patch repository.ProjectPatch) (*models.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			if patch.Name != nil {
				f.projects[i].Name = *patch.Name
			}
			if patch.Description != nil {
				f.projects[i].Description = patch.Description
			}
			if patch.Status != nil {
				f.projects[i].Status = *patch.Status
			}
			f.projects[i].UpdatedAt = time.Now()
			cp := f.projects[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProjectRepo) CountForCreator(_ context.Context, createdBy uuid.UUID, status *models.ProjectStatus) (int64, error) {
	var n int64
	for _, p := range f.projects {
		if p.CreatedBy != createdBy {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}

type fakeMemberRepo struct {
	rows []models.ProjectMember
}

func (f *fakeMemberRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	out := make([]models.ProjectMember, 0)
	for _, m := range f.rows {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) GetRole(_ context.Context, projectID, userID uuid.UUID) (rbac.ProjectRole, error) {
	for _, m := range f.rows {
		if m.ProjectID == projectID && m.UserID == userID {
			return m.Role, nil
		}
	}
	return rbac.ProjectNone, nil
}

func (f *fakeMemberRepo) Add(_ context.Context, projectID, userID uuid.UUID, role rbac.ProjectRole, assignedBy uuid.UUID) (*models.ProjectMember, error) {
	// Same backstop as the unique index in Postgres.
	for _, m := range f.rows {
		if m.ProjectID == projectID && m.UserID == userID {
			return nil, repository.ErrDuplicateMember
		}
	}
	m := models.ProjectMember{
		ID:         uuid.New(),
		ProjectID:  projectID,
		UserID:     userID,
		Role:       role,
		AssignedAt: time.Now(),
		AssignedBy: assignedBy,
	}
	f.rows = append(f.rows, m)
	return &m, nil
}

func (f *fakeMemberRepo) UpdateRole(_ context.Context, memberID uuid.UUID, role rbac.ProjectRole) error {
	for i := range f.rows {
		if f.rows[i].ID == memberID {
			f.rows[i].Role = role
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMemberRepo) Remove(_ context.Context, memberID uuid.UUID) error {
	for i := range f.rows {
		if f.rows[i].ID == memberID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeContentRepo struct {
	items   []models.Content
	countFn func() // called on every count, for the dashboard test
}

func (f *fakeContentRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]models.Content, error) {
	out := make([]models.Content, 0)
	for _, c := range f.items {
		if c.AuthorID == authorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.Content, error) {
	out := make([]models.Content, 0)
	for _, c := range f.items {
		if c.ProjectID != nil && *c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Content, error) {
	for _, c := range f.items {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContentRepo) Create(_ context.Context, authorID uuid.UUID, in repository.ContentCreate) (*models.Content, error) {
	c := models.Content{
		ID:        uuid.New(),
		Title:     in.Title,
		Body:      in.Body,
		Status:    in.Status,
		ProjectID: in.ProjectID,
		AuthorID:  authorID,
		Tags:      in.Tags,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.items = append(f.items, c)
	return &c, nil
}

func (f *fakeContentRepo) Update(_ context.Context, id uuid.UUID, patch repository.ContentPatch) (*models.Content, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			if patch.Title != nil {
				f.items[i].Title = *patch.Title
			}
			if patch.Body != nil {
				f.items[i].Body = *patch.Body
			}
			if patch.Status != nil {
				f.items[i].Status = *patch.Status
			}
			f.items[i].UpdatedAt = time.Now()
			cp := f.items[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeContentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeContentRepo) CountForAuthor(_ context.Context, authorID uuid.UUID, status *models.ContentStatus) (int64, error) {
	if f.countFn != nil {
		f.countFn()
	}
	var n int64
	for _, c := range f.items {
		if c.AuthorID != authorID {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}

var errBoom = errors.New("boom")

func identFor(role rbac.GlobalRole, userID uuid.UUID) identity.Identity {
	return identity.Identity{
		UserID: userID,
		Profile: &models.Profile{
			ID:         userID,
			GlobalRole: role,
		},
		IsAdmin:      role == rbac.GlobalAdmin || role == rbac.GlobalSuperAdmin,
		IsSuperAdmin: role == rbac.GlobalSuperAdmin,
	}
}
