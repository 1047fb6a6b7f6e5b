package services

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/rmejia/unified-portfolio-backend/models"
)

// ProjectFilters narrows a project collection. Every criterion that is set
// must match (AND); within Tags a project matches when it carries any of the
// listed tags (OR). Search is a case-insensitive substring match against
// title, summary and tags.
type ProjectFilters struct {
	Status     models.ProjectStatus `json:"status,omitempty"`
	Featured   *bool                `json:"featured,omitempty"`
	Type       models.ProjectType   `json:"type,omitempty"`
	TemplateID string               `json:"template_id,omitempty"`
	Tags       []string             `json:"tags,omitempty"`
	Search     string               `json:"search,omitempty"`
}

// SortField selects the ordering key for SortProjects
type SortField string

const (
	SortByTitle      SortField = "title"
	SortByCreatedAt  SortField = "createdAt"
	SortByUpdatedAt  SortField = "updatedAt"
	SortByOrderIndex SortField = "orderIndex"
)

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// projects without an explicit order index sort after every ordered one
// when ascending
const orderIndexSentinel = int(^uint(0) >> 1)

// FilterProjects returns the projects matching every set criterion
func FilterProjects(projects []models.UnifiedProject, filters ProjectFilters) []models.UnifiedProject {
	return lo.Filter(projects, func(p models.UnifiedProject, _ int) bool {
		return matchesFilters(p, filters)
	})
}

func matchesFilters(p models.UnifiedProject, f ProjectFilters) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.TemplateID != "" && (p.TemplateID == nil || *p.TemplateID != f.TemplateID) {
		return false
	}
	if len(f.Tags) > 0 {
		hasAny := lo.SomeBy(f.Tags, func(want string) bool {
			return lo.SomeBy(p.Tags, func(have string) bool {
				return strings.EqualFold(have, want)
			})
		})
		if !hasAny {
			return false
		}
	}
	if f.Search != "" && !matchesSearch(p, f.Search, false) {
		return false
	}
	return true
}

// SortProjects returns a sorted copy; the input slice is left untouched
func SortProjects(projects []models.UnifiedProject, orderBy SortField, direction SortDirection) []models.UnifiedProject {
	out := make([]models.UnifiedProject, len(projects))
	copy(out, projects)

	less := func(a, b models.UnifiedProject) bool {
		switch orderBy {
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByUpdatedAt:
			return a.UpdatedAt.Before(b.UpdatedAt)
		case SortByOrderIndex:
			return orderIndexOf(a) < orderIndexOf(b)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if direction == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func orderIndexOf(p models.UnifiedProject) int {
	if p.OrderIndex == nil {
		return orderIndexSentinel
	}
	return *p.OrderIndex
}

// ProjectStats summarizes a collection for the dashboard
type ProjectStats struct {
	Total      int                          `json:"total"`
	ByStatus   map[models.ProjectStatus]int `json:"by_status"`
	Featured   int                          `json:"featured"`
	ByType     map[models.ProjectType]int   `json:"by_type"`
	ByTemplate map[string]int               `json:"by_template"`
}

// Stats counts projects by status, type and template, plus the featured total
func Stats(projects []models.UnifiedProject) ProjectStats {
	stats := ProjectStats{
		Total:      len(projects),
		ByStatus:   lo.CountValuesBy(projects, func(p models.UnifiedProject) models.ProjectStatus { return p.Status }),
		ByType:     lo.CountValuesBy(projects, func(p models.UnifiedProject) models.ProjectType { return p.Type }),
		ByTemplate: map[string]int{},
		Featured:   lo.CountBy(projects, func(p models.UnifiedProject) bool { return p.Featured }),
	}
	for _, p := range projects {
		if p.TemplateID != nil {
			stats.ByTemplate[*p.TemplateID]++
		}
	}
	return stats
}

// SearchProjects matches the query as a case-insensitive substring across
// title, summary, tags, role and the three flat content text fields. A blank
// query returns the input unchanged.
func SearchProjects(projects []models.UnifiedProject, query string) []models.UnifiedProject {
	if strings.TrimSpace(query) == "" {
		return projects
	}
	return lo.Filter(projects, func(p models.UnifiedProject, _ int) bool {
		return matchesSearch(p, query, true)
	})
}

// matchesSearch implements both search surfaces: the filter criterion
// (title, summary, tags) and the wide search that also inspects role and the
// flat content text fields
func matchesSearch(p models.UnifiedProject, query string, wide bool) bool {
	q := strings.ToLower(strings.TrimSpace(query))

	haystacks := []string{p.Title, p.Summary}
	haystacks = append(haystacks, p.Tags...)
	if wide {
		haystacks = append(haystacks, p.Role, p.Content.Challenge, p.Content.Solution, p.Content.Results)
	}

	return lo.SomeBy(haystacks, func(h string) bool {
		return strings.Contains(strings.ToLower(h), q)
	})
}
