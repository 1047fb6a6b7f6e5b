package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rmejia/unified-portfolio-backend/models"
)

// EditorMode selects which content representation the author is editing
type EditorMode string

const (
	ModeSimple   EditorMode = "simple"
	ModeAdvanced EditorMode = "advanced"
)

// DefaultAutosaveInterval matches the editor UI's 30 second background save
const DefaultAutosaveInterval = 30 * time.Second

// EditorSession orchestrates one open editor over a working copy of a
// project. Simple-mode edits touch the flat fields; switching to advanced
// mode (and every save) runs the content synchronizer so the section list
// always reflects the latest simple edits before anyone looks at it.
//
// Switching back to simple mode performs no inverse recompute: advanced
// edits become visible in simple fields only through an explicit save, which
// extracts nothing — the flat fields keep their last authored values. This
// one-way synchronization is deliberate; guessing flat fields from arbitrary
// custom sections would risk clobbering simple-authored data.
//
// A background goroutine saves every interval while unsaved changes exist.
// Autosave failures are logged and swallowed so they never interrupt
// editing; explicit Save and Publish surface validation errors to the
// caller. Autosave and an explicit save are not mutually excluded beyond the
// session mutex: if both fire, the later write wins, acceptable under the
// single-author assumption.
type EditorSession struct {
	mu      sync.Mutex
	store   *ProjectStore
	logger  zerolog.Logger
	project models.UnifiedProject
	mode    EditorMode
	dirty   bool

	stopAutosave chan struct{}
	stopOnce     sync.Once
}

// NewEditorSession opens an editor over the stored project and starts the
// autosave loop. Close must be called when the editor goes away.
func NewEditorSession(ctx context.Context, store *ProjectStore, projectID string, autosaveInterval time.Duration) (*EditorSession, error) {
	project, err := store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if autosaveInterval <= 0 {
		autosaveInterval = DefaultAutosaveInterval
	}

	s := &EditorSession{
		store:        store,
		logger:       log.With().Str("handlerName", "editorSession").Str("projectID", projectID).Logger(),
		project:      project,
		mode:         ModeSimple,
		stopAutosave: make(chan struct{}),
	}

	go s.autosaveLoop(autosaveInterval)
	return s, nil
}

// Project returns a deep copy of the working state
func (s *EditorSession) Project() models.UnifiedProject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}

// Mode returns the current editing mode
func (s *EditorSession) Mode() EditorMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Dirty reports whether unsaved changes exist
func (s *EditorSession) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// UpdateContent replaces the flat content fields of the working copy
func (s *EditorSession) UpdateContent(content models.ProjectContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project.Content = content.Clone()
	s.dirty = true
}

// UpdateImages replaces the flat image list of the working copy
func (s *EditorSession) UpdateImages(images []models.ProjectImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project.Images = models.CloneImages(images)
	s.dirty = true
}

// UpdateSections replaces the section list of the working copy (advanced
// mode editing)
func (s *EditorSession) UpdateSections(sections []models.ProjectSection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project.Sections = models.CloneSections(sections)
	s.dirty = true
}

// UpdateMeta applies descriptive-field edits to the working copy
func (s *EditorSession) UpdateMeta(partial models.UpdateProjectData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applyPartial(&s.project, partial)
	s.dirty = true
}

// SwitchMode toggles between simple and advanced editing. Entering advanced
// mode synchronizes the section list first so it reflects the latest simple
// edits; entering simple mode changes nothing beyond the mode flag.
func (s *EditorSession) SwitchMode(mode EditorMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return
	}
	if mode == ModeAdvanced {
		s.project.Sections = SectionsFromContent(s.project.Content, s.project.Images, s.project.Sections)
		s.dirty = true
	}
	s.mode = mode
}

// Save commits the working copy through the store. In simple mode the
// section list is synchronized first so the canonical record never lags the
// flat fields. Validation failures propagate so the caller can show them.
func (s *EditorSession) Save(ctx context.Context) (models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *EditorSession) saveLocked(ctx context.Context) (models.UnifiedProject, error) {
	if s.mode == ModeSimple {
		s.project.Sections = SectionsFromContent(s.project.Content, s.project.Images, s.project.Sections)
	}

	partial := models.UpdateProjectData{
		Title:    &s.project.Title,
		Role:     &s.project.Role,
		Summary:  &s.project.Summary,
		Slug:     &s.project.Slug,
		Tags:     &s.project.Tags,
		Type:     &s.project.Type,
		Featured: &s.project.Featured,
		Content:  &s.project.Content,
		Images:   &s.project.Images,
		Sections: &s.project.Sections,
	}

	saved, err := s.store.Update(ctx, s.project.ID, partial)
	if err != nil {
		return models.UnifiedProject{}, err
	}

	s.project = saved
	s.dirty = false
	return saved.Clone(), nil
}

// Publish saves the working copy and publishes it. Validation failures from
// either step propagate to the caller for user-visible display.
func (s *EditorSession) Publish(ctx context.Context) (models.UnifiedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.saveLocked(ctx); err != nil {
		return models.UnifiedProject{}, err
	}

	published, err := s.store.Publish(ctx, s.project.ID)
	if err != nil {
		return models.UnifiedProject{}, err
	}

	s.project = published
	return published.Clone(), nil
}

// Close stops the autosave loop. An in-flight save still completes; the
// session performs no final flush on its own.
func (s *EditorSession) Close() {
	s.stopOnce.Do(func() { close(s.stopAutosave) })
}

func (s *EditorSession) autosaveLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopAutosave:
			return
		case <-ticker.C:
			s.autosave()
		}
	}
}

// autosave is a non-blocking background save; failures are logged, never
// surfaced, so a transient storage problem cannot interrupt editing
func (s *EditorSession) autosave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.saveLocked(ctx); err != nil {
		s.logger.Error().Err(err).Msg("autosave failed")
	}
}
