package services

import (
	"github.com/rmejia/unified-portfolio-backend/models"
)

// generated section ids are stable per kind, so repeated synchronization
// updates sections in place instead of churning identifiers
const generatedIDPrefix = "gen-"

func generatedID(kind models.SectionKind) string {
	return generatedIDPrefix + string(kind)
}

var generatedTitles = map[models.SectionKind]string{
	models.KindChallenge:    "The Challenge",
	models.KindSolution:     "The Solution",
	models.KindResults:      "Results",
	models.KindProcess:      "Process",
	models.KindTechnologies: "Technologies",
	models.KindSkills:       "Skills",
	models.KindMedia:        "Project Gallery",
}

// canonical emission order for synchronized sections
var generatedOrder = []models.SectionKind{
	models.KindChallenge,
	models.KindSolution,
	models.KindResults,
	models.KindProcess,
	models.KindTechnologies,
	models.KindSkills,
	models.KindMedia,
}

// SectionsFromContent produces the canonical section list for the flat
// "simple" content. One generated section is emitted per non-empty flat
// field, in canonical order, followed by every existing section the
// synchronizer did not generate, in their original relative order.
//
// The function only ever replaces or drops sections carrying a matching
// (kind, generated-id) pair from a previous synchronization run. Custom,
// template-seeded and manually added sections pass through untouched, which
// is what makes the Simple -> Advanced transition safe to run at any time.
func SectionsFromContent(content models.ProjectContent, images []models.ProjectImage, existing []models.ProjectSection) []models.ProjectSection {
	var out []models.ProjectSection

	for _, kind := range generatedOrder {
		section, ok := generateSection(kind, content, images)
		if !ok {
			continue
		}
		// keep the title if the author renamed a previously generated section
		if prev, found := findGenerated(existing, kind); found && prev.Title != "" {
			section.Title = prev.Title
		}
		out = append(out, section)
	}

	for _, s := range existing {
		if isGenerated(s) {
			continue
		}
		out = append(out, s.Clone())
	}

	return out
}

// generateSection builds the generated section for one kind, or reports
// false when the backing flat field is empty
func generateSection(kind models.SectionKind, content models.ProjectContent, images []models.ProjectImage) (models.ProjectSection, bool) {
	section := models.ProjectSection{
		ID:        generatedID(kind),
		Title:     generatedTitles[kind],
		Kind:      kind,
		Generated: true,
	}

	switch kind {
	case models.KindChallenge:
		if content.Challenge == "" {
			return section, false
		}
		section.Body = content.Challenge
	case models.KindSolution:
		if content.Solution == "" {
			return section, false
		}
		section.Body = content.Solution
	case models.KindResults:
		if content.Results == "" {
			return section, false
		}
		section.Body = content.Results
	case models.KindProcess:
		if len(content.Process) == 0 {
			return section, false
		}
		section.Items = append([]string(nil), content.Process...)
	case models.KindTechnologies:
		if len(content.Technologies) == 0 {
			return section, false
		}
		section.Items = append([]string(nil), content.Technologies...)
	case models.KindSkills:
		if len(content.Skills) == 0 {
			return section, false
		}
		section.Items = append([]string(nil), content.Skills...)
	case models.KindMedia:
		if len(images) == 0 {
			return section, false
		}
		section.Media = models.CloneImages(images)
	default:
		return section, false
	}

	return section, true
}

// ContentFromSections is the inverse extraction: it scans the section list
// for the kinds that map back to flat fields and collects every embedded
// media reference, in section order then embedded order, into a flat image
// list. Text fields take the first matching section; list fields concatenate
// across all matching sections, de-duplicated since technologies and skills
// are ordered sets.
func ContentFromSections(sections []models.ProjectSection) (models.ProjectContent, []models.ProjectImage) {
	var content models.ProjectContent
	var images []models.ProjectImage

	for _, s := range sections {
		switch s.Kind {
		case models.KindChallenge:
			if content.Challenge == "" {
				content.Challenge = s.Body
			}
		case models.KindSolution:
			if content.Solution == "" {
				content.Solution = s.Body
			}
		case models.KindResults:
			if content.Results == "" {
				content.Results = s.Body
			}
		case models.KindProcess:
			content.Process = append(content.Process, s.Items...)
		case models.KindTechnologies:
			content.Technologies = appendUnique(content.Technologies, s.Items)
		case models.KindSkills:
			content.Skills = appendUnique(content.Skills, s.Items)
		}

		images = append(images, models.CloneImages(s.Media)...)
	}

	return content, images
}

func isGenerated(s models.ProjectSection) bool {
	return s.Generated && s.ID == generatedID(s.Kind)
}

func findGenerated(sections []models.ProjectSection, kind models.SectionKind) (models.ProjectSection, bool) {
	for _, s := range sections {
		if s.Kind == kind && isGenerated(s) {
			return s, true
		}
	}
	return models.ProjectSection{}, false
}

func appendUnique(dst []string, src []string) []string {
	for _, v := range src {
		seen := false
		for _, existing := range dst {
			if existing == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
