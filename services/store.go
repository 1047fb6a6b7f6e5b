package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rmejia/unified-portfolio-backend/database"
	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
)

// ProjectStore owns the canonical project collection. It is the only writer
// of persisted state: every mutation validates first, commits to the backend,
// and rebuilds the derived media-usage index from the new snapshot. A single
// mutex serializes access; the system is single-author by design and the
// store makes no multi-writer guarantees beyond last-write-wins.
type ProjectStore struct {
	mu       sync.Mutex
	backend  database.Backend
	notifier *PublishNotifier
	logger   zerolog.Logger

	projects   []models.UnifiedProject
	usageIndex map[string][]models.MediaUsageEntry
}

// NewProjectStore loads the persisted collection once and keeps it in memory.
// The notifier may be nil; publish then skips the webhook fan-out.
func NewProjectStore(ctx context.Context, backend database.Backend, notifier *PublishNotifier) (*ProjectStore, error) {
	logger := log.With().Str("handlerName", "projectStore").Logger()

	projects, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	// backends with unordered storage (redis hashes) return arbitrary order
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})

	s := &ProjectStore{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		projects: projects,
	}
	s.usageIndex = buildUsageIndex(s.projects)
	return s, nil
}

// Create makes a new draft project. The slug is derived from the title unless
// supplied, and uniqued against the collection either way; with a TemplateID
// the section list is seeded from the catalog.
func (s *ProjectStore) Create(ctx context.Context, data models.CreateProjectData) (models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	project := models.UnifiedProject{
		ID:         uuid.NewString(),
		Title:      data.Title,
		Role:       data.Role,
		Summary:    data.Summary,
		Tags:       append([]string(nil), data.Tags...),
		Type:       data.Type,
		Featured:   data.Featured,
		TemplateID: data.TemplateID,
		Status:     models.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if project.Type == "" {
		project.Type = models.TypeProject
	}

	slug := data.Slug
	if slug == "" {
		slug = Slugify(data.Title)
	}
	project.Slug = uniqueSlug(slug, s.takenSlugs(""))

	if data.TemplateID != nil {
		sections, err := InstantiateTemplate(*data.TemplateID)
		if err != nil {
			return models.UnifiedProject{}, err
		}
		project.Sections = sections
	}

	if err := models.ValidateProject(project); err != nil {
		return models.UnifiedProject{}, err
	}

	if err := s.commit(ctx, append(s.snapshot(), project)); err != nil {
		return models.UnifiedProject{}, err
	}

	s.logger.Info().Str("projectID", project.ID).Str("slug", project.Slug).Msg("project created")
	return project.Clone(), nil
}

// Get returns a deep copy of one project
func (s *ProjectStore) Get(ctx context.Context, id string) (models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.UnifiedProject{}, errs.NewNotFoundError("project", id)
	}
	return s.projects[idx].Clone(), nil
}

// List returns deep copies of the projects matching the filters; nil filters
// return the whole collection
func (s *ProjectStore) List(ctx context.Context, filters *ProjectFilters) ([]models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.projects
	if filters != nil {
		matched = FilterProjects(s.projects, *filters)
	}

	out := make([]models.UnifiedProject, len(matched))
	for i, p := range matched {
		out[i] = p.Clone()
	}
	return out, nil
}

// Update merges the partial into the stored record. Only set fields are
// replaced (arrays wholesale), the merged result is re-validated before
// committing, and on any failure the prior state is fully preserved.
func (s *ProjectStore) Update(ctx context.Context, id string, partial models.UpdateProjectData) (models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(ctx, id, partial)
}

func (s *ProjectStore) updateLocked(ctx context.Context, id string, partial models.UpdateProjectData) (models.UnifiedProject, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.UnifiedProject{}, errs.NewNotFoundError("project", id)
	}

	merged := s.projects[idx].Clone()
	applyPartial(&merged, partial)
	if partial.Slug != nil && *partial.Slug != s.projects[idx].Slug {
		merged.Slug = uniqueSlug(*partial.Slug, s.takenSlugs(id))
	}
	merged.UpdatedAt = time.Now().UTC()

	if err := models.ValidateProject(merged); err != nil {
		return models.UnifiedProject{}, err
	}

	next := s.snapshot()
	next[idx] = merged
	if err := s.commit(ctx, next); err != nil {
		return models.UnifiedProject{}, err
	}
	return merged.Clone(), nil
}

// Delete removes a project unconditionally. The media-usage index exists so
// media deletion can assess impact; it never blocks project deletion.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return errs.NewNotFoundError("project", id)
	}

	snap := s.snapshot()
	next := append(snap[:idx], snap[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("projectID", id).Msg("project deleted")
	return nil
}

// Duplicate deep-copies a project under a new id and a suffix-uniqued slug,
// reset to an unpublished draft
func (s *ProjectStore) Duplicate(ctx context.Context, id string) (models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.UnifiedProject{}, errs.NewNotFoundError("project", id)
	}

	now := time.Now().UTC()
	dup := s.projects[idx].Clone()
	dup.ID = uuid.NewString()
	dup.Slug = uniqueSlug(dup.Slug, s.takenSlugs(""))
	dup.Status = models.StatusDraft
	dup.Featured = false
	dup.PublishedAt = nil
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.commit(ctx, append(s.snapshot(), dup)); err != nil {
		return models.UnifiedProject{}, err
	}
	return dup.Clone(), nil
}

// Reorder assigns OrderIndex by position for each listed id; projects not
// listed keep their prior index. Unknown ids are ignored.
func (s *ProjectStore) Reorder(ctx context.Context, idsInOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	for position, id := range idsInOrder {
		for i := range next {
			if next[i].ID == id {
				pos := position
				next[i].OrderIndex = &pos
				next[i].UpdatedAt = time.Now().UTC()
				break
			}
		}
	}

	return s.commit(ctx, next)
}

// BulkUpdateFailure reports one record that could not be updated in a batch
type BulkUpdateFailure struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// BulkUpdate applies the same partial to each listed project, best-effort.
// Unlike Update this is deliberately not all-or-nothing: a failing record is
// reported and skipped while every other update in the batch still commits,
// so callers must inspect the returned failures rather than rely on a thrown
// error.
func (s *ProjectStore) BulkUpdate(ctx context.Context, ids []string, partial models.UpdateProjectData) ([]models.UnifiedProject, []BulkUpdateFailure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []models.UnifiedProject
	var failures []BulkUpdateFailure

	for _, id := range ids {
		p, err := s.updateLocked(ctx, id, partial)
		if err != nil {
			s.logger.Warn().Str("projectID", id).Err(err).Msg("bulk update entry failed")
			failures = append(failures, BulkUpdateFailure{ID: id, Err: err.Error()})
			continue
		}
		updated = append(updated, p)
	}

	return updated, failures
}

// PrepareForPublish validates the project and returns it stamped as
// published, with PublishedAt set only on first publish. It never touches
// stored state; on a validation failure nothing is mutated.
func (s *ProjectStore) PrepareForPublish(project models.UnifiedProject) (models.UnifiedProject, error) {
	if err := models.ValidateProject(project); err != nil {
		return models.UnifiedProject{}, err
	}

	out := project.Clone()
	now := time.Now().UTC()
	out.Status = models.StatusPublished
	if out.PublishedAt == nil {
		out.PublishedAt = &now
	}
	out.UpdatedAt = now
	return out, nil
}

// Publish runs PrepareForPublish on the stored record, commits the result and
// fires the publish webhooks. The fan-out is best-effort: webhook failures
// are logged, never returned.
func (s *ProjectStore) Publish(ctx context.Context, id string) (models.UnifiedProject, error) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.UnifiedProject{}, errs.NewNotFoundError("project", id)
	}

	published, err := s.PrepareForPublish(s.projects[idx])
	if err != nil {
		s.mu.Unlock()
		return models.UnifiedProject{}, err
	}

	next := s.snapshot()
	next[idx] = published
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return models.UnifiedProject{}, err
	}
	s.mu.Unlock()

	if s.notifier != nil {
		if err := s.notifier.NotifyPublished(ctx, published); err != nil {
			s.logger.Error().Err(err).Str("projectID", id).Msg("publish notifications failed")
		}
	}

	s.logger.Info().Str("projectID", id).Str("slug", published.Slug).Msg("project published")
	return published.Clone(), nil
}

// GetUsage returns the back-references for one media asset, flat image
// references before section-embedded ones per project. The result is a copy;
// the index itself is only ever replaced by the store.
func (s *ProjectStore) GetUsage(mediaID string) []models.MediaUsageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.usageIndex[mediaID]
	out := make([]models.MediaUsageEntry, len(entries))
	copy(out, entries)
	return out
}

// commit persists the candidate collection and, only on success, swaps it in
// and rebuilds the media-usage index from the new snapshot
func (s *ProjectStore) commit(ctx context.Context, next []models.UnifiedProject) error {
	if err := s.backend.Save(ctx, next); err != nil {
		return err
	}
	s.projects = next
	s.usageIndex = buildUsageIndex(s.projects)
	return nil
}

// snapshot shallow-copies the collection slice so a failed commit cannot
// leave a partially mutated slice behind
func (s *ProjectStore) snapshot() []models.UnifiedProject {
	out := make([]models.UnifiedProject, len(s.projects))
	copy(out, s.projects)
	return out
}

func (s *ProjectStore) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// takenSlugs returns the set of slugs in use, excluding the given project id
func (s *ProjectStore) takenSlugs(excludeID string) map[string]bool {
	taken := make(map[string]bool, len(s.projects))
	for _, p := range s.projects {
		if p.ID != excludeID {
			taken[p.Slug] = true
		}
	}
	return taken
}

// applyPartial merges set fields into the project. Slices replace the stored
// value wholesale rather than merging element-wise.
func applyPartial(p *models.UnifiedProject, partial models.UpdateProjectData) {
	if partial.Title != nil {
		p.Title = *partial.Title
	}
	if partial.Role != nil {
		p.Role = *partial.Role
	}
	if partial.Summary != nil {
		p.Summary = *partial.Summary
	}
	if partial.Slug != nil {
		p.Slug = *partial.Slug
	}
	if partial.Tags != nil {
		p.Tags = append([]string(nil), (*partial.Tags)...)
	}
	if partial.Type != nil {
		p.Type = *partial.Type
	}
	if partial.Featured != nil {
		p.Featured = *partial.Featured
	}
	if partial.TemplateID != nil {
		v := *partial.TemplateID
		p.TemplateID = &v
	}
	if partial.Content != nil {
		p.Content = partial.Content.Clone()
	}
	if partial.Images != nil {
		p.Images = models.CloneImages(*partial.Images)
	}
	if partial.Sections != nil {
		p.Sections = models.CloneSections(*partial.Sections)
	}
	if partial.Status != nil {
		p.Status = *partial.Status
	}
	if partial.OrderIndex != nil {
		v := *partial.OrderIndex
		p.OrderIndex = &v
	}
}
