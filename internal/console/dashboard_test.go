package console

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

func TestDashboardLoad(t *testing.T) {
	content := &fakeContentRepo{}
	members := &fakeMemberRepo{}
	projects := &fakeProjectRepo{members: members}
	a := NewDashboard(content, projects)

	userID := uuid.New()
	ctx := context.Background()

	for _, status := range []models.ContentStatus{
		models.ContentDraft, models.ContentPublished, models.ContentPublished, models.ContentReview,
	} {
		_, err := content.Create(ctx, userID, repository.ContentCreate{Title: "x", Status: status})
		require.NoError(t, err)
	}
	// Someone else's content must not leak into the caller's numbers.
	_, err := content.Create(ctx, uuid.New(), repository.ContentCreate{Title: "x", Status: models.ContentPublished})
	require.NoError(t, err)

	_, err = projects.Create(ctx, "A", nil, models.ProjectActive, userID)
	require.NoError(t, err)
	_, err = projects.Create(ctx, "B", nil, models.ProjectArchived, userID)
	require.NoError(t, err)

	stats, err := a.Load(ctx, identFor(rbac.GlobalUser, userID))
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalContent)
	assert.Equal(t, int64(2), stats.PublishedContent)
	assert.Equal(t, int64(1), stats.ReviewContent)
	assert.Equal(t, int64(2), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.ActiveProjects)
}

func TestDashboardLoadIssuesEveryContentCount(t *testing.T) {
	var calls atomic.Int32
	content := &fakeContentRepo{countFn: func() { calls.Add(1) }}
	members := &fakeMemberRepo{}
	projects := &fakeProjectRepo{members: members}
	a := NewDashboard(content, projects)

	_, err := a.Load(context.Background(), identFor(rbac.GlobalUser, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

type failingContentRepo struct {
	fakeContentRepo
}

func (f *failingContentRepo) CountForAuthor(context.Context, uuid.UUID, *models.ContentStatus) (int64, error) {
	return 0, errBoom
}

func TestDashboardLoadPropagatesFailure(t *testing.T) {
	members := &fakeMemberRepo{}
	a := NewDashboard(&failingContentRepo{}, &fakeProjectRepo{members: members})

	stats, err := a.Load(context.Background(), identFor(rbac.GlobalUser, uuid.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, stats)
}
