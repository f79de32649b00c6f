package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

type fakeProfileRepo struct {
	rows    map[uuid.UUID]models.Profile
	creates int
	getErr  error
	addErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[uuid.UUID]models.Profile{}}
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.rows[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, id uuid.UUID, email, name string, role rbac.GlobalRole) (*models.Profile, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.creates++
	if p, ok := f.rows[id]; ok {
		// Same resolution as ON CONFLICT DO NOTHING plus re-read.
		return &p, nil
	}
	p := models.Profile{
		ID: id, Email: email, Name: name, GlobalRole: role,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.rows[id] = p
	return &p, nil
}

func (f *fakeProfileRepo) List(context.Context) ([]models.Profile, error) { return nil, nil }

func (f *fakeProfileRepo) Update(_ context.Context, id uuid.UUID, patch repository.ProfilePatch) (*models.Profile, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.GlobalRole != nil {
		p.GlobalRole = *patch.GlobalRole
	}
	f.rows[id] = p
	return &p, nil
}

func (f *fakeProfileRepo) TouchLastLogin(context.Context, uuid.UUID) error { return nil }

func (f *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func TestResolveCreatesProfileOnFirstAccess(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewResolver(repo, zap.NewNop())

	userID := uuid.New()
	ident := r.Resolve(context.Background(), userID, "jane.doe@example.com")

	require.NotNil(t, ident.Profile)
	assert.Equal(t, userID, ident.Profile.ID)
	assert.Equal(t, "jane.doe", ident.Profile.Name)
	assert.Equal(t, rbac.GlobalUser, ident.Profile.GlobalRole)
	assert.False(t, ident.IsAdmin)
	assert.False(t, ident.IsSuperAdmin)
	assert.Equal(t, 1, repo.creates)
}

func TestResolveIsIdempotent(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewResolver(repo, zap.NewNop())

	userID := uuid.New()
	first := r.Resolve(context.Background(), userID, "jane@example.com")
	second := r.Resolve(context.Background(), userID, "jane@example.com")

	require.NotNil(t, second.Profile)
	assert.Equal(t, first.Profile.ID, second.Profile.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestResolveRecreatesDeletedProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewResolver(repo, zap.NewNop())

	userID := uuid.New()
	r.Resolve(context.Background(), userID, "jane@example.com")
	require.NoError(t, repo.Delete(context.Background(), userID))

	// The session outlives the profile; the next resolution recreates
	// it with default privileges.
	ident := r.Resolve(context.Background(), userID, "jane@example.com")
	require.NotNil(t, ident.Profile)
	assert.Equal(t, rbac.GlobalUser, ident.Profile.GlobalRole)
	assert.Equal(t, 2, repo.creates)
}

func TestResolvePrivilegeFlags(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewResolver(repo, zap.NewNop())

	userID := uuid.New()
	r.Resolve(context.Background(), userID, "root@example.com")

	super := rbac.GlobalSuperAdmin
	_, err := repo.Update(context.Background(), userID, repository.ProfilePatch{GlobalRole: &super})
	require.NoError(t, err)

	ident := r.Resolve(context.Background(), userID, "root@example.com")
	assert.True(t, ident.IsAdmin)
	assert.True(t, ident.IsSuperAdmin)
	assert.Equal(t, rbac.GlobalSuperAdmin, ident.GlobalRole())
}

func TestResolveFailureDecaysToLeastPrivilege(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.getErr = errors.New("connection refused")
	r := NewResolver(repo, zap.NewNop())

	userID := uuid.New()
	ident := r.Resolve(context.Background(), userID, "jane@example.com")

	assert.Equal(t, userID, ident.UserID)
	assert.Nil(t, ident.Profile)
	assert.False(t, ident.IsAdmin)
	assert.False(t, ident.IsSuperAdmin)
	assert.Equal(t, rbac.GlobalUser, ident.GlobalRole())
}

func TestResolveCreateFailureDecaysToLeastPrivilege(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.addErr = errors.New("insert failed")
	r := NewResolver(repo, zap.NewNop())

	ident := r.Resolve(context.Background(), uuid.New(), "jane@example.com")
	assert.Nil(t, ident.Profile)
	assert.False(t, ident.IsAdmin)
}

func TestNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"jane.doe@example.com", "jane.doe"},
		{"x@y", "x"},
		{"no-at-sign", "no-at-sign"},
		{"@leading", "@leading"},
		{"", "User"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NameFromEmail(tc.email), "email %q", tc.email)
	}
}
