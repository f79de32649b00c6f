package console

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
)

func seedProjects(t *testing.T) (*fakeProjectRepo, *fakeMemberRepo, []models.Project) {
	t.Helper()
	members := &fakeMemberRepo{}
	repo := &fakeProjectRepo{members: members}

	owner := uuid.New()
	ctx := context.Background()
	alpha, err := repo.Create(ctx, "Alpha Launch", nil, models.ProjectActive, owner)
	require.NoError(t, err)
	beta, err := repo.Create(ctx, "Beta Docs", nil, models.ProjectDraft, owner)
	require.NoError(t, err)
	gamma, err := repo.Create(ctx, "Gamma Archive", nil, models.ProjectArchived, owner)
	require.NoError(t, err)

	return repo, members, []models.Project{*alpha, *beta, *gamma}
}

func TestProjectsListSuperAdminSeesAll(t *testing.T) {
	repo, members, all := seedProjects(t)
	a := NewProjects(repo, members)

	ident := identFor(rbac.GlobalSuperAdmin, uuid.New())
	views, err := a.List(context.Background(), ident)
	require.NoError(t, err)
	require.Len(t, views, len(all))

	for _, v := range views {
		assert.Equal(t, rbac.ProjectNone, v.UserRole)
		assert.True(t, v.CanEdit)
		assert.True(t, v.CanDelete)
		assert.True(t, v.CanComment)
		assert.False(t, v.IsViewOnly)
	}
}

func TestProjectsListRegularUserSeesOnlyMemberships(t *testing.T) {
	repo, members, all := seedProjects(t)
	a := NewProjects(repo, members)

	userID := uuid.New()
	_, err := members.Add(context.Background(), all[1].ID, userID, rbac.ProjectEditor, uuid.New())
	require.NoError(t, err)

	ident := identFor(rbac.GlobalUser, userID)
	views, err := a.List(context.Background(), ident)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, all[1].ID, v.ID)
	assert.Equal(t, rbac.ProjectEditor, v.UserRole)
	assert.True(t, v.CanEdit)
	assert.False(t, v.CanDelete)
	assert.True(t, v.CanComment)
	assert.False(t, v.IsViewOnly)
}

func TestProjectsListUserWithoutMembershipsSeesNone(t *testing.T) {
	repo, members, _ := seedProjects(t)
	a := NewProjects(repo, members)

	views, err := a.List(context.Background(), identFor(rbac.GlobalUser, uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}

func TestProjectsListAdminViewerMembershipIsViewOnly(t *testing.T) {
	// A global admin sees every project, but a viewer membership still
	// pins the member view to read-only on the annotated row.
	repo, members, all := seedProjects(t)
	a := NewProjects(repo, members)

	adminID := uuid.New()
	_, err := members.Add(context.Background(), all[0].ID, adminID, rbac.ProjectViewer, uuid.New())
	require.NoError(t, err)

	ident := identFor(rbac.GlobalAdmin, adminID)
	view, err := a.Get(context.Background(), ident, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.Equal(t, rbac.ProjectViewer, view.UserRole)
	assert.True(t, view.IsViewOnly)
	assert.True(t, view.CanEdit)    // project editing is a global-admin right
	assert.False(t, view.CanDelete) // deletion is not
}

func TestProjectsGetInvisibleReadsAsMissing(t *testing.T) {
	repo, members, all := seedProjects(t)
	a := NewProjects(repo, members)

	view, err := a.Get(context.Background(), identFor(rbac.GlobalUser, uuid.New()), all[0].ID)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestProjectsGetMissingProject(t *testing.T) {
	repo, members, _ := seedProjects(t)
	a := NewProjects(repo, members)

	view, err := a.Get(context.Background(), identFor(rbac.GlobalSuperAdmin, uuid.New()), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestProjectsRoleSuperAdminSkipsLookup(t *testing.T) {
	repo, members, all := seedProjects(t)
	a := NewProjects(repo, members)

	superID := uuid.New()
	_, err := members.Add(context.Background(), all[0].ID, superID, rbac.ProjectViewer, uuid.New())
	require.NoError(t, err)

	role, err := a.Role(context.Background(), identFor(rbac.GlobalSuperAdmin, superID), all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, rbac.ProjectNone, role)
}
