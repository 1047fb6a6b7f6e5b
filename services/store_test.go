package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rmejia/unified-portfolio-backend/database"
	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
)

func newTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	store, err := NewProjectStore(context.Background(), database.NewMemoryBackend(), nil)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}
	return store
}

func mustCreate(t *testing.T, store *ProjectStore, data models.CreateProjectData) models.UnifiedProject {
	t.Helper()
	if data.Role == "" {
		data.Role = "Developer"
	}
	if data.Summary == "" {
		data.Summary = "a short summary"
	}
	p, err := store.Create(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error creating project: %v", err)
	}
	return p
}

// failingBackend loads fine but refuses every save
type failingBackend struct {
	database.Backend
}

func (f *failingBackend) Save(ctx context.Context, projects []models.UnifiedProject) error {
	return errors.New("disk on fire")
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	store := newTestStore(t)

	p := mustCreate(t, store, models.CreateProjectData{Title: "My Demo"})
	if p.Slug != "my-demo" {
		t.Fatalf("expected slug my-demo, got %q", p.Slug)
	}
	if p.Status != models.StatusDraft {
		t.Fatalf("new projects must start as drafts, got %q", p.Status)
	}
	if p.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestCreateUniquesSlugs(t *testing.T) {
	store := newTestStore(t)

	first := mustCreate(t, store, models.CreateProjectData{Title: "My Demo"})
	second := mustCreate(t, store, models.CreateProjectData{Title: "My Demo"})
	third := mustCreate(t, store, models.CreateProjectData{Title: "My Demo"})

	if first.Slug != "my-demo" || second.Slug != "my-demo-2" || third.Slug != "my-demo-3" {
		t.Fatalf("slug suffixes wrong: %q %q %q", first.Slug, second.Slug, third.Slug)
	}
}

func TestCreateSeedsTemplateSections(t *testing.T) {
	store := newTestStore(t)

	tmplID := "minimal"
	p := mustCreate(t, store, models.CreateProjectData{Title: "Seeded", TemplateID: &tmplID})

	tmpl, _ := TemplateByID(tmplID)
	if len(p.Sections) != len(tmpl.Blueprints) {
		t.Fatalf("expected %d seeded sections, got %d", len(tmpl.Blueprints), len(p.Sections))
	}

	badID := "no-such-template"
	_, err := store.Create(context.Background(), models.CreateProjectData{
		Title: "Broken", Role: "Dev", Summary: "s", TemplateID: &badID,
	})
	if !errs.IsTemplateNotFound(err) {
		t.Fatalf("expected template-not-found error, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(context.Background(), models.CreateProjectData{Title: "No role or summary"})
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(vErr.Errors) != 2 {
		t.Fatalf("expected both violations reported, got %v", vErr.Errors)
	}

	projects, _ := store.List(context.Background(), nil)
	if len(projects) != 0 {
		t.Fatalf("failed create must not store anything, got %d projects", len(projects))
	}
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Copy Me", Tags: []string{"a"}})

	got, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.Tags[0] = "mutated"

	again, _ := store.Get(context.Background(), created.ID)
	if again.Tags[0] != "a" {
		t.Fatal("caller mutation leaked into stored state")
	}

	if _, err := store.Get(context.Background(), "missing"); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateEmptyPartialOnlyTouchesUpdatedAt(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Stable", Tags: []string{"x"}})

	updated, err := store.Update(context.Background(), created.ID, models.UpdateProjectData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != created.Title || updated.Slug != created.Slug || len(updated.Tags) != 1 {
		t.Fatalf("empty partial changed fields: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("UpdatedAt went backwards: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateValidationPreservesStoredState(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Valid"})

	longSummary := strings.Repeat("x", 501)
	_, err := store.Update(context.Background(), created.ID, models.UpdateProjectData{Summary: &longSummary})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	stored, _ := store.Get(context.Background(), created.ID)
	if stored.Summary != "a short summary" {
		t.Fatalf("failed update mutated stored state: %q", stored.Summary)
	}
}

func TestUpdateReuniquesChangedSlug(t *testing.T) {
	store := newTestStore(t)
	mustCreate(t, store, models.CreateProjectData{Title: "First", Slug: "taken"})
	second := mustCreate(t, store, models.CreateProjectData{Title: "Second"})

	slug := "taken"
	updated, err := store.Update(context.Background(), second.ID, models.UpdateProjectData{Slug: &slug})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Slug != "taken-2" {
		t.Fatalf("expected colliding slug to be suffixed, got %q", updated.Slug)
	}

	// setting a project's own slug again must not grow a suffix
	same := updated.Slug
	again, err := store.Update(context.Background(), second.ID, models.UpdateProjectData{Slug: &same})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Slug != "taken-2" {
		t.Fatalf("re-saving own slug changed it to %q", again.Slug)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Doomed"})

	if err := store.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(context.Background(), created.ID); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
	if err := store.Delete(context.Background(), created.ID); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
}

func TestDuplicate(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Original", Featured: true})

	published, err := store.Publish(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error publishing: %v", err)
	}

	dup, err := store.Duplicate(context.Background(), published.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dup.ID == published.ID {
		t.Fatal("duplicate must get a new id")
	}
	if dup.Slug != "original-2" {
		t.Fatalf("expected suffixed slug, got %q", dup.Slug)
	}
	if dup.Status != models.StatusDraft || dup.Featured || dup.PublishedAt != nil {
		t.Fatalf("duplicate must reset to an unpublished draft: %+v", dup)
	}
	if dup.Title != published.Title {
		t.Fatalf("duplicate should keep the title, got %q", dup.Title)
	}
}

func TestReorder(t *testing.T) {
	store := newTestStore(t)
	a := mustCreate(t, store, models.CreateProjectData{Title: "A"})
	b := mustCreate(t, store, models.CreateProjectData{Title: "B"})
	c := mustCreate(t, store, models.CreateProjectData{Title: "C"})

	if err := store.Reorder(context.Background(), []string{b.ID, a.ID, "unknown"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotA, _ := store.Get(context.Background(), a.ID)
	gotB, _ := store.Get(context.Background(), b.ID)
	gotC, _ := store.Get(context.Background(), c.ID)

	if gotB.OrderIndex == nil || *gotB.OrderIndex != 0 {
		t.Fatalf("b should be at position 0, got %v", gotB.OrderIndex)
	}
	if gotA.OrderIndex == nil || *gotA.OrderIndex != 1 {
		t.Fatalf("a should be at position 1, got %v", gotA.OrderIndex)
	}
	if gotC.OrderIndex != nil {
		t.Fatalf("unlisted project must keep its index, got %v", gotC.OrderIndex)
	}
}

func TestBulkUpdateBestEffort(t *testing.T) {
	store := newTestStore(t)
	a := mustCreate(t, store, models.CreateProjectData{Title: "A"})
	b := mustCreate(t, store, models.CreateProjectData{Title: "B"})

	featured := true
	updated, failures := store.BulkUpdate(context.Background(),
		[]string{a.ID, "missing", b.ID},
		models.UpdateProjectData{Featured: &featured},
	)

	if len(updated) != 2 {
		t.Fatalf("expected 2 successful updates, got %d", len(updated))
	}
	if len(failures) != 1 || failures[0].ID != "missing" {
		t.Fatalf("expected one failure for the missing id, got %+v", failures)
	}

	gotB, _ := store.Get(context.Background(), b.ID)
	if !gotB.Featured {
		t.Fatal("update after the failing entry did not apply")
	}
}

func TestPrepareForPublish(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Ready"})

	prepared, err := store.PrepareForPublish(created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prepared.Status != models.StatusPublished || prepared.PublishedAt == nil {
		t.Fatalf("publish stamping wrong: %+v", prepared)
	}

	// stored state untouched, this is a pure transformation
	stored, _ := store.Get(context.Background(), created.ID)
	if stored.Status != models.StatusDraft {
		t.Fatalf("PrepareForPublish mutated stored state: %q", stored.Status)
	}

	// a second publish keeps the original timestamp
	again, err := store.PrepareForPublish(prepared)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.PublishedAt.Equal(*prepared.PublishedAt) {
		t.Fatal("PublishedAt must only be set on first publish")
	}

	created.Summary = ""
	if _, err := store.PrepareForPublish(created); !errs.IsValidation(err) {
		t.Fatalf("expected validation error for incomplete project, got %v", err)
	}
}

func TestPublishPersists(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Live"})

	published, err := store.Publish(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if published.Status != models.StatusPublished {
		t.Fatalf("expected published status, got %q", published.Status)
	}

	stored, _ := store.Get(context.Background(), created.ID)
	if stored.Status != models.StatusPublished || stored.PublishedAt == nil {
		t.Fatalf("publish not persisted: %+v", stored)
	}
}

func TestGetUsageTracksEdits(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Media Heavy"})

	images := []models.ProjectImage{{ID: "m-1", URL: "https://cdn/m-1.png", Type: models.MediaImage}}
	sections := []models.ProjectSection{
		{ID: "s1", Title: "Gallery", Kind: models.KindGallery, Media: images},
	}
	if _, err := store.Update(context.Background(), created.ID, models.UpdateProjectData{
		Images: &images, Sections: &sections,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usage := store.GetUsage("m-1")
	if len(usage) != 2 {
		t.Fatalf("expected flat + section reference, got %+v", usage)
	}
	if usage[0].SectionID != "" || usage[1].SectionID != "s1" {
		t.Fatalf("usage entry order wrong: %+v", usage)
	}

	// removing the references must drop them from the index
	empty := []models.ProjectImage{}
	noSections := []models.ProjectSection{}
	if _, err := store.Update(context.Background(), created.ID, models.UpdateProjectData{
		Images: &empty, Sections: &noSections,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage := store.GetUsage("m-1"); len(usage) != 0 {
		t.Fatalf("stale usage entries survived the edit: %+v", usage)
	}
}

func TestFailedSavePreservesState(t *testing.T) {
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Sticky"})

	store.backend = &failingBackend{}

	title := "Changed"
	if _, err := store.Update(context.Background(), created.ID, models.UpdateProjectData{Title: &title}); err == nil {
		t.Fatal("expected the backend failure to surface")
	}

	store.backend = database.NewMemoryBackend()
	stored, _ := store.Get(context.Background(), created.ID)
	if stored.Title != "Sticky" {
		t.Fatalf("failed commit mutated in-memory state: %q", stored.Title)
	}
}

func TestListWithFilters(t *testing.T) {
	store := newTestStore(t)
	a := mustCreate(t, store, models.CreateProjectData{Title: "A"})
	mustCreate(t, store, models.CreateProjectData{Title: "B"})

	if _, err := store.Publish(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := store.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(all))
	}

	published, err := store.List(context.Background(), &ProjectFilters{Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(published) != 1 || published[0].ID != a.ID {
		t.Fatalf("filtered list wrong: %+v", published)
	}
}
