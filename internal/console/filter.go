package console

import (
	"strings"

	"github.com/contentdesk/contentdesk/internal/models"
)

// matchesSearch is a case-insensitive substring match over the given
// fields. An empty term matches everything.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// statusAll is the filter value that disables status filtering. An
// empty filter means the same.
const statusAll = "all"

// FilterContent applies the content screen's client-side filters over
// an already-fetched collection: substring search over title and body,
// exact status match.
func FilterContent(items []ContentView, term, status string) []ContentView {
	out := make([]ContentView, 0, len(items))
	for _, item := range items {
		if !matchesSearch(term, item.Title, item.Body) {
			continue
		}
		if status != "" && status != statusAll && item.Status != models.ContentStatus(status) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterProjects applies the project screen's filters: substring search
// over name and description, exact status match.
func FilterProjects(items []ProjectView, term, status string) []ProjectView {
	out := make([]ProjectView, 0, len(items))
	for _, item := range items {
		desc := ""
		if item.Description != nil {
			desc = *item.Description
		}
		if !matchesSearch(term, item.Name, desc) {
			continue
		}
		if status != "" && status != statusAll && item.Status != models.ProjectStatus(status) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterProfiles applies the users screen's filters: substring search
// over name and email, exact global-role match.
func FilterProfiles(items []models.Profile, term, role string) []models.Profile {
	out := make([]models.Profile, 0, len(items))
	for _, item := range items {
		if !matchesSearch(term, item.Name, item.Email) {
			continue
		}
		if role != "" && role != statusAll && string(item.GlobalRole) != role {
			continue
		}
		out = append(out, item)
	}
	return out
}
