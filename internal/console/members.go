package console

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// Members manages project membership.
type Members struct {
	members repository.MemberRepository
}

func NewMembers(members repository.MemberRepository) *Members {
	return &Members{members: members}
}

func (a *Members) List(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	return a.members.ListByProject(ctx, projectID)
}

// Assign adds a user to a project, rejecting duplicates before the
// write. The check and the insert are not atomic: two admin sessions can
// both pass the check, in which case the unique index on (project_id,
// user_id) fails the second insert with the same ErrDuplicateMember.
// That race is a documented limitation, not something this layer papers
// over with locking.
func (a *Members) Assign(ctx context.Context, projectID, userID uuid.UUID, role rbac.ProjectRole, assignedBy uuid.UUID) (*models.ProjectMember, error) {
	existing, err := a.members.GetRole(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing membership: %w", err)
	}
	if existing.IsMember() {
		return nil, repository.ErrDuplicateMember
	}

	return a.members.Add(ctx, projectID, userID, role, assignedBy)
}

func (a *Members) ChangeRole(ctx context.Context, memberID uuid.UUID, role rbac.ProjectRole) error {
	return a.members.UpdateRole(ctx, memberID, role)
}

func (a *Members) Remove(ctx context.Context, memberID uuid.UUID) error {
	return a.members.Remove(ctx, memberID)
}
