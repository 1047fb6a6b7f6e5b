package database

import (
	"context"
	"sync"

	"github.com/rmejia/unified-portfolio-backend/models"
)

// MemoryBackend keeps the collection in process memory. Used by tests and by
// DB_TYPE=memory for running the server without external storage; contents
// are lost on restart.
type MemoryBackend struct {
	mu       sync.Mutex
	projects []models.UnifiedProject
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(ctx context.Context) ([]models.UnifiedProject, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.UnifiedProject, len(b.projects))
	for i, p := range b.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (b *MemoryBackend) Save(ctx context.Context, projects []models.UnifiedProject) error {
	snapshot := make([]models.UnifiedProject, len(projects))
	for i, p := range projects {
		snapshot[i] = p.Clone()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects = snapshot
	return nil
}
