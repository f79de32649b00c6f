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

// ContentView is a content row annotated with the caller's mutation
// rights over it.
type ContentView struct {
	models.Content
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// Content assembles the content screens.
type Content struct {
	content repository.ContentRepository
	members repository.MemberRepository
}

func NewContent(content repository.ContentRepository, members repository.MemberRepository) *Content {
	return &Content{content: content, members: members}
}

// ListMine is the content screen: always author-scoped, even for global
// admins. Project-less content is visible only here, only to its author.
// Authors hold full edit rights over their own items.
func (a *Content) ListMine(ctx context.Context, ident identity.Identity) ([]ContentView, error) {
	rows, err := a.content.ListByAuthor(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own content: %w", err)
	}
	out := make([]ContentView, 0, len(rows))
	for _, c := range rows {
		out = append(out, ContentView{Content: c, CanEdit: true, CanDelete: true})
	}
	return out, nil
}

// ListForProject is the project-details content list. Mutation rights
// come from the membership role: super_admin bypasses membership, a
// plain global admin without a membership row does not.
func (a *Content) ListForProject(ctx context.Context, ident identity.Identity, projectID uuid.UUID, role rbac.ProjectRole) ([]ContentView, error) {
	rows, err := a.content.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project content: %w", err)
	}
	editable := rbac.CanEditContent(ident.GlobalRole(), role)
	out := make([]ContentView, 0, len(rows))
	for _, c := range rows {
		out = append(out, ContentView{Content: c, CanEdit: editable, CanDelete: editable})
	}
	return out, nil
}

// CanMutate decides whether the caller may update or delete one content
// item: authors always can; items inside a project additionally open up
// to whoever holds content-edit rights there.
func (a *Content) CanMutate(ctx context.Context, ident identity.Identity, item *models.Content) (bool, error) {
	if item.AuthorID == ident.UserID {
		return true, nil
	}
	if item.ProjectID == nil {
		// Project-less content belongs to its author alone; even
		// super_admin has no second path to it.
		return ident.IsSuperAdmin, nil
	}

	role := rbac.ProjectNone
	if !ident.IsSuperAdmin {
		var err error
		role, err = a.members.GetRole(ctx, *item.ProjectID, ident.UserID)
		if err != nil {
			return false, fmt.Errorf("get project role: %w", err)
		}
	}
	return rbac.CanEditContent(ident.GlobalRole(), role), nil
}
