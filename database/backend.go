// Package database provides the durable backings for the project store. A
// Backend persists the whole collection at once: Save either fully succeeds
// or leaves the previously persisted state intact, which is all the store
// needs to guarantee that a rejected commit never corrupts stored data.
package database

import (
	"context"

	"github.com/rmejia/unified-portfolio-backend/models"
)

type Backend interface {
	// Load returns the persisted collection. A backend with no prior state
	// returns an empty slice, not an error.
	Load(ctx context.Context) ([]models.UnifiedProject, error)

	// Save atomically replaces the persisted collection.
	Save(ctx context.Context, projects []models.UnifiedProject) error
}
