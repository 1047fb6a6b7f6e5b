package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/rmejia/unified-portfolio-backend/models"
)

func TestGetMediaUsage(t *testing.T) {
	router, store := newTestRouter(t)
	created := createVia(t, router, "Media Heavy")

	images := []models.ProjectImage{{ID: "m-1", URL: "https://cdn/m-1.png", Type: models.MediaImage}}
	sections := []models.ProjectSection{
		{ID: "s1", Title: "Gallery", Kind: models.KindGallery, Media: images},
	}
	if _, err := store.Update(context.Background(), created.ID, models.UpdateProjectData{
		Images: &images, Sections: &sections,
	}); err != nil {
		t.Fatalf("seeding media references: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/media/m-1/usage", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("usage returned %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[MediaUsageResponse](t, rec)
	if resp.MediaID != "m-1" || resp.Total != 2 {
		t.Fatalf("unexpected usage response: %+v", resp)
	}
	if resp.Usage[1].SectionID != "s1" {
		t.Fatalf("section reference missing: %+v", resp.Usage)
	}
	// the static resolver knows no assets; usage still comes back
	if resp.Asset != nil {
		t.Fatalf("expected no resolved asset, got %+v", resp.Asset)
	}
}

func TestGetMediaUsageUnreferenced(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/media/unknown/usage", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("usage returned %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[MediaUsageResponse](t, rec)
	if resp.Total != 0 || resp.Usage == nil {
		t.Fatalf("expected an empty usage list, got %s", rec.Body.String())
	}
}
