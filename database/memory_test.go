package database

import (
	"context"
	"testing"

	"github.com/rmejia/unified-portfolio-backend/models"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	initial, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(initial) != 0 {
		t.Fatalf("fresh backend should be empty, got %d", len(initial))
	}

	projects := []models.UnifiedProject{
		{ID: "p1", Slug: "one", Title: "One", Tags: []string{"a"}},
		{ID: "p2", Slug: "two", Title: "Two"},
	}
	if err := b.Save(ctx, projects); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].ID != "p1" || loaded[1].ID != "p2" {
		t.Fatalf("collection did not round-trip: %+v", loaded)
	}
}

func TestMemoryBackendIsolatesCallers(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	projects := []models.UnifiedProject{{ID: "p1", Slug: "one", Title: "One", Tags: []string{"a"}}}
	if err := b.Save(ctx, projects); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mutations after save must not reach stored state
	projects[0].Tags[0] = "mutated"

	loaded, _ := b.Load(ctx)
	if loaded[0].Tags[0] != "a" {
		t.Fatal("save did not deep-copy its input")
	}

	// mutations of loaded state must not reach the backend
	loaded[0].Title = "Changed"
	again, _ := b.Load(ctx)
	if again[0].Title != "One" {
		t.Fatal("load did not deep-copy stored state")
	}
}

func TestMemoryBackendSaveReplacesWholesale(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	if err := b.Save(ctx, []models.UnifiedProject{{ID: "p1", Slug: "one"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Save(ctx, []models.UnifiedProject{{ID: "p2", Slug: "two"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _ := b.Load(ctx)
	if len(loaded) != 1 || loaded[0].ID != "p2" {
		t.Fatalf("save must replace the whole collection, got %+v", loaded)
	}
}
