package services

import (
	"github.com/google/uuid"

	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
)

// The template catalog is fixed at build time and read-only at runtime.
// Instantiating a template deep-copies its blueprints, so a project seeded
// from a template can be edited freely without touching the catalog entry.
var templateCatalog = []models.ProjectTemplate{
	{
		ID:          "case-study",
		Name:        "Case Study",
		Description: "The classic challenge/solution/results narrative with a process breakdown and a closing gallery",
		Category:    "narrative",
		Blueprints: []models.SectionBlueprint{
			{Title: "The Challenge", Kind: models.KindChallenge},
			{Title: "The Solution", Kind: models.KindSolution},
			{Title: "Process", Kind: models.KindProcess},
			{Title: "Results", Kind: models.KindResults},
			{Title: "Technologies", Kind: models.KindTechnologies},
			{Title: "Gallery", Kind: models.KindGallery},
		},
	},
	{
		ID:          "minimal",
		Name:        "Minimal Project",
		Description: "A short intro and a gallery, for work that speaks for itself",
		Category:    "compact",
		Blueprints: []models.SectionBlueprint{
			{Title: "Overview", Kind: models.KindText},
			{Title: "Gallery", Kind: models.KindGallery},
		},
	},
	{
		ID:          "visual-showcase",
		Name:        "Visual Showcase",
		Description: "Media-first layout with alternating galleries and captions",
		Category:    "visual",
		Blueprints: []models.SectionBlueprint{
			{Title: "Hero", Kind: models.KindMedia},
			{Title: "About this work", Kind: models.KindText},
			{Title: "Selected Frames", Kind: models.KindGallery},
			{Title: "Credits", Kind: models.KindText},
		},
	},
	{
		ID:          "technical-deep-dive",
		Name:        "Technical Deep Dive",
		Description: "Architecture story for engineering-heavy projects",
		Category:    "narrative",
		Blueprints: []models.SectionBlueprint{
			{Title: "The Challenge", Kind: models.KindChallenge},
			{Title: "Architecture", Kind: models.KindText},
			{Title: "The Solution", Kind: models.KindSolution},
			{Title: "Technologies", Kind: models.KindTechnologies},
			{Title: "Skills", Kind: models.KindSkills},
			{Title: "Results", Kind: models.KindResults},
		},
	},
}

// Templates returns the full catalog
func Templates() []models.ProjectTemplate {
	out := make([]models.ProjectTemplate, len(templateCatalog))
	copy(out, templateCatalog)
	return out
}

// TemplateByID looks up a single catalog entry
func TemplateByID(id string) (models.ProjectTemplate, error) {
	for _, t := range templateCatalog {
		if t.ID == id {
			return t, nil
		}
	}
	return models.ProjectTemplate{}, errs.NewTemplateNotFoundError(id)
}

// InstantiateTemplate turns a template's blueprints into fresh, independently
// mutable sections with new ids. Blueprint-seeded sections are not marked
// Generated: the synchronizer must never replace or drop them.
func InstantiateTemplate(id string) ([]models.ProjectSection, error) {
	tmpl, err := TemplateByID(id)
	if err != nil {
		return nil, err
	}

	sections := make([]models.ProjectSection, 0, len(tmpl.Blueprints))
	for _, bp := range tmpl.Blueprints {
		sections = append(sections, models.ProjectSection{
			ID:    uuid.NewString(),
			Title: bp.Title,
			Kind:  bp.Kind,
		})
	}
	return sections, nil
}
