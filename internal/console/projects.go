package console

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/contentdesk/contentdesk/internal/identity"
	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// ProjectView is a project row annotated with the caller's role in it
// and the per-row capability flags the list screen renders.
type ProjectView struct {
	models.Project
	UserRole   rbac.ProjectRole `json:"user_role,omitempty"`
	CanEdit    bool             `json:"can_edit"`
	CanDelete  bool             `json:"can_delete"`
	CanComment bool             `json:"can_comment"`
	IsViewOnly bool             `json:"is_view_only"`
}

// Projects assembles the projects screen.
type Projects struct {
	projects repository.ProjectRepository
	members  repository.MemberRepository
}

func NewProjects(projects repository.ProjectRepository, members repository.MemberRepository) *Projects {
	return &Projects{projects: projects, members: members}
}

func annotateProject(p models.Project, ident identity.Identity, role rbac.ProjectRole) ProjectView {
	g := ident.GlobalRole()
	return ProjectView{
		Project:    p,
		UserRole:   role,
		CanEdit:    rbac.CanEditProject(g, role),
		CanDelete:  rbac.CanDeleteProject(g, role),
		CanComment: rbac.CanComment(g, role),
		IsViewOnly: rbac.IsViewOnly(g, role),
	}
}

// List branches on the caller's global role: admins and super admins get
// every project; everyone else gets only the projects their membership
// rows reach, annotated with the role granting access.
func (a *Projects) List(ctx context.Context, ident identity.Identity) ([]ProjectView, error) {
	if rbac.CanViewAllProjects(ident.GlobalRole()) {
		rows, err := a.projects.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list all projects: %w", err)
		}
		out := make([]ProjectView, 0, len(rows))
		for _, p := range rows {
			out = append(out, annotateProject(p, ident, rbac.ProjectNone))
		}
		return out, nil
	}

	rows, err := a.projects.ListForUser(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("list projects for user: %w", err)
	}
	out := make([]ProjectView, 0, len(rows))
	for _, mp := range rows {
		out = append(out, annotateProject(mp.Project, ident, mp.Role))
	}
	return out, nil
}

// Get returns one project annotated for the caller, or (nil, nil) when
// the project does not exist (the screen redirects on that), or (nil,
// nil) disguised as not-found when the caller has no visibility into it.
func (a *Projects) Get(ctx context.Context, ident identity.Identity, projectID uuid.UUID) (*ProjectView, error) {
	p, err := a.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if p == nil {
		return nil, nil
	}

	role, err := a.Role(ctx, ident, projectID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanViewProject(ident.GlobalRole(), role) {
		// Invisible and nonexistent are indistinguishable on purpose.
		return nil, nil
	}

	view := annotateProject(*p, ident, role)
	return &view, nil
}

// Role resolves the caller's membership role in a project. Super admins
// skip the lookup: the policy never needs their membership.
func (a *Projects) Role(ctx context.Context, ident identity.Identity, projectID uuid.UUID) (rbac.ProjectRole, error) {
	if ident.IsSuperAdmin {
		return rbac.ProjectNone, nil
	}
	role, err := a.members.GetRole(ctx, projectID, ident.UserID)
	if err != nil {
		return rbac.ProjectNone, fmt.Errorf("get project role: %w", err)
	}
	return role, nil
}
