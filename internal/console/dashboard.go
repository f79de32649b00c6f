package console

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/contentdesk/contentdesk/internal/identity"
	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// Stats is the dashboard's headline numbers, all scoped to the caller
// (their authored content, their created projects).
type Stats struct {
	TotalContent     int64 `json:"total_content"`
	PublishedContent int64 `json:"published_content"`
	ReviewContent    int64 `json:"review_content"`
	TotalProjects    int64 `json:"total_projects"`
	ActiveProjects   int64 `json:"active_projects"`
}

// Dashboard assembles the overview screen.
type Dashboard struct {
	content  repository.ContentRepository
	projects repository.ProjectRepository
}

func NewDashboard(content repository.ContentRepository, projects repository.ProjectRepository) *Dashboard {
	return &Dashboard{content: content, projects: projects}
}

// Load issues the five count queries concurrently and joins them before
// returning; one failure fails the whole load.
func (a *Dashboard) Load(ctx context.Context, ident identity.Identity) (*Stats, error) {
	var (
		stats     Stats
		published = models.ContentPublished
		review    = models.ContentReview
		active    = models.ProjectActive
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalContent, err = a.content.CountForAuthor(gctx, ident.UserID, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.PublishedContent, err = a.content.CountForAuthor(gctx, ident.UserID, &published)
		return err
	})
	g.Go(func() (err error) {
		stats.ReviewContent, err = a.content.CountForAuthor(gctx, ident.UserID, &review)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProjects, err = a.projects.CountForCreator(gctx, ident.UserID, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveProjects, err = a.projects.CountForCreator(gctx, ident.UserID, &active)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard stats: %w", err)
	}
	return &stats, nil
}
