package services

import (
	"context"
	"testing"
	"time"

	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
)

// a long interval keeps the background loop quiet during tests
const testAutosaveInterval = time.Hour

func newTestEditor(t *testing.T) (*EditorSession, *ProjectStore, models.UnifiedProject) {
	t.Helper()
	store := newTestStore(t)
	created := mustCreate(t, store, models.CreateProjectData{Title: "Draft Piece"})

	session, err := NewEditorSession(context.Background(), store, created.ID, testAutosaveInterval)
	if err != nil {
		t.Fatalf("unexpected error opening editor: %v", err)
	}
	t.Cleanup(session.Close)
	return session, store, created
}

func TestNewEditorSessionUnknownProject(t *testing.T) {
	store := newTestStore(t)
	if _, err := NewEditorSession(context.Background(), store, "missing", testAutosaveInterval); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEditorDirtyTracking(t *testing.T) {
	session, _, _ := newTestEditor(t)

	if session.Dirty() {
		t.Fatal("fresh session must not be dirty")
	}
	session.UpdateContent(models.ProjectContent{Challenge: "new"})
	if !session.Dirty() {
		t.Fatal("content edit must mark the session dirty")
	}

	if _, err := session.Save(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Dirty() {
		t.Fatal("save must clear the dirty flag")
	}
}

func TestEditorSwitchToAdvancedSynchronizes(t *testing.T) {
	session, _, _ := newTestEditor(t)

	session.UpdateContent(models.ProjectContent{Challenge: "tough one", Solution: "solved"})
	session.SwitchMode(ModeAdvanced)

	if session.Mode() != ModeAdvanced {
		t.Fatalf("expected advanced mode, got %q", session.Mode())
	}
	sections := session.Project().Sections
	if len(sections) != 2 {
		t.Fatalf("expected 2 generated sections after switch, got %d", len(sections))
	}
	if sections[0].Kind != models.KindChallenge || sections[1].Kind != models.KindSolution {
		t.Fatalf("section order wrong: %+v", sections)
	}
}

func TestEditorSwitchBackToSimpleKeepsFlatFields(t *testing.T) {
	session, _, _ := newTestEditor(t)

	session.UpdateContent(models.ProjectContent{Challenge: "original"})
	session.SwitchMode(ModeAdvanced)

	// advanced edit of a custom section
	sections := session.Project().Sections
	sections = append(sections, models.ProjectSection{ID: "custom", Title: "Notes", Kind: models.KindText, Body: "extra"})
	session.UpdateSections(sections)

	session.SwitchMode(ModeSimple)

	if got := session.Project().Content.Challenge; got != "original" {
		t.Fatalf("flat fields must keep their authored values, got %q", got)
	}
}

func TestEditorSavePersistsThroughStore(t *testing.T) {
	session, store, created := newTestEditor(t)

	session.UpdateContent(models.ProjectContent{Results: "shipped"})
	saved, err := session.Save(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(saved.Sections) != 1 || saved.Sections[0].Kind != models.KindResults {
		t.Fatalf("simple-mode save must synchronize sections: %+v", saved.Sections)
	}

	stored, _ := store.Get(context.Background(), created.ID)
	if stored.Content.Results != "shipped" {
		t.Fatalf("save did not reach the store: %+v", stored.Content)
	}
}

func TestEditorSaveSurfacesValidation(t *testing.T) {
	session, _, _ := newTestEditor(t)

	empty := ""
	session.UpdateMeta(models.UpdateProjectData{Summary: &empty})

	if _, err := session.Save(context.Background()); !errs.IsValidation(err) {
		t.Fatalf("expected validation error from explicit save, got %v", err)
	}
	if !session.Dirty() {
		t.Fatal("failed save must leave the session dirty")
	}
}

func TestEditorPublish(t *testing.T) {
	session, store, created := newTestEditor(t)

	session.UpdateContent(models.ProjectContent{Challenge: "c"})
	published, err := session.Publish(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if published.Status != models.StatusPublished {
		t.Fatalf("expected published status, got %q", published.Status)
	}

	stored, _ := store.Get(context.Background(), created.ID)
	if stored.Status != models.StatusPublished || stored.Content.Challenge != "c" {
		t.Fatalf("publish did not persist the working copy: %+v", stored)
	}
}

func TestEditorCloseIsIdempotent(t *testing.T) {
	session, _, _ := newTestEditor(t)
	session.Close()
	session.Close()
}
