package services

import (
	"github.com/rmejia/unified-portfolio-backend/models"
)

// buildUsageIndex derives the media-usage index from a collection snapshot.
// It is a pure function: the store throws the previous index away and calls
// this after every successful write, so a removed media reference can never
// leave a stale back-reference behind.
//
// For each media asset the entries follow collection order; within a project
// the flat image references come first (no section id), then section-embedded
// references in section order.
func buildUsageIndex(projects []models.UnifiedProject) map[string][]models.MediaUsageEntry {
	index := make(map[string][]models.MediaUsageEntry)

	for _, p := range projects {
		for _, img := range p.Images {
			if img.ID == "" {
				continue
			}
			index[img.ID] = append(index[img.ID], models.MediaUsageEntry{
				MediaID:      img.ID,
				ProjectID:    p.ID,
				ProjectTitle: p.Title,
			})
		}
		for _, s := range p.Sections {
			for _, img := range s.Media {
				if img.ID == "" {
					continue
				}
				index[img.ID] = append(index[img.ID], models.MediaUsageEntry{
					MediaID:      img.ID,
					ProjectID:    p.ID,
					ProjectTitle: p.Title,
					SectionID:    s.ID,
					SectionTitle: s.Title,
				})
			}
		}
	}

	return index
}
