package console

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

func TestContentListMineIsAuthorScoped(t *testing.T) {
	content := &fakeContentRepo{}
	a := NewContent(content, &fakeMemberRepo{})

	mine := uuid.New()
	other := uuid.New()
	ctx := context.Background()
	_, err := content.Create(ctx, mine, repository.ContentCreate{Title: "Mine", Status: models.ContentDraft})
	require.NoError(t, err)
	_, err = content.Create(ctx, other, repository.ContentCreate{Title: "Theirs", Status: models.ContentDraft})
	require.NoError(t, err)

	// Even a super admin's content screen shows only their own items.
	views, err := a.ListMine(ctx, identFor(rbac.GlobalSuperAdmin, mine))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mine", views[0].Title)
	assert.True(t, views[0].CanEdit)
	assert.True(t, views[0].CanDelete)
}

func TestContentListForProjectFlags(t *testing.T) {
	content := &fakeContentRepo{}
	a := NewContent(content, &fakeMemberRepo{})

	projectID := uuid.New()
	ctx := context.Background()
	_, err := content.Create(ctx, uuid.New(), repository.ContentCreate{
		Title: "Doc", Status: models.ContentDraft, ProjectID: &projectID,
	})
	require.NoError(t, err)

	cases := []struct {
		name     string
		global   rbac.GlobalRole
		role     rbac.ProjectRole
		editable bool
	}{
		{"viewer", rbac.GlobalUser, rbac.ProjectViewer, false},
		{"contributor", rbac.GlobalUser, rbac.ProjectContrib, true},
		{"admin without membership", rbac.GlobalAdmin, rbac.ProjectNone, false},
		{"super_admin without membership", rbac.GlobalSuperAdmin, rbac.ProjectNone, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			views, err := a.ListForProject(ctx, identFor(tc.global, uuid.New()), projectID, tc.role)
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, tc.editable, views[0].CanEdit)
			assert.Equal(t, tc.editable, views[0].CanDelete)
		})
	}
}

func TestContentCanMutateAuthorAlways(t *testing.T) {
	content := &fakeContentRepo{}
	a := NewContent(content, &fakeMemberRepo{})

	authorID := uuid.New()
	item, err := content.Create(context.Background(), authorID, repository.ContentCreate{
		Title: "Notes", Status: models.ContentDraft,
	})
	require.NoError(t, err)

	ok, err := a.CanMutate(context.Background(), identFor(rbac.GlobalUser, authorID), item)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContentCanMutateProjectless(t *testing.T) {
	content := &fakeContentRepo{}
	a := NewContent(content, &fakeMemberRepo{})

	item, err := content.Create(context.Background(), uuid.New(), repository.ContentCreate{
		Title: "Private", Status: models.ContentDraft,
	})
	require.NoError(t, err)

	// Project-less content has no membership path; a plain admin is
	// locked out, super_admin is not.
	ok, err := a.CanMutate(context.Background(), identFor(rbac.GlobalAdmin, uuid.New()), item)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.CanMutate(context.Background(), identFor(rbac.GlobalSuperAdmin, uuid.New()), item)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContentCanMutateThroughMembership(t *testing.T) {
	members := &fakeMemberRepo{}
	content := &fakeContentRepo{}
	a := NewContent(content, members)

	projectID := uuid.New()
	item, err := content.Create(context.Background(), uuid.New(), repository.ContentCreate{
		Title: "Shared", Status: models.ContentDraft, ProjectID: &projectID,
	})
	require.NoError(t, err)

	editorID := uuid.New()
	viewerID := uuid.New()
	_, err = members.Add(context.Background(), projectID, editorID, rbac.ProjectEditor, uuid.New())
	require.NoError(t, err)
	_, err = members.Add(context.Background(), projectID, viewerID, rbac.ProjectViewer, uuid.New())
	require.NoError(t, err)

	ok, err := a.CanMutate(context.Background(), identFor(rbac.GlobalUser, editorID), item)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.CanMutate(context.Background(), identFor(rbac.GlobalUser, viewerID), item)
	require.NoError(t, err)
	assert.False(t, ok)

	// Global admin with no membership row: same asymmetry as the list.
	ok, err = a.CanMutate(context.Background(), identFor(rbac.GlobalAdmin, uuid.New()), item)
	require.NoError(t, err)
	assert.False(t, ok)
}
