package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rmejia/unified-portfolio-backend/models"
)

const defaultProjectsKey = "portfolio:projects"

// RedisBackend persists the collection as a single hash keyed by project id.
// The hash is replaced inside one MULTI/EXEC block so a reader never observes
// a half-written collection.
type RedisBackend struct {
	client *redis.Client
	key    string
}

func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = defaultProjectsKey
	}
	return &RedisBackend{client: client, key: key}
}

func (b *RedisBackend) Load(ctx context.Context) ([]models.UnifiedProject, error) {
	entries, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, fmt.Errorf("loading projects hash: %w", err)
	}

	projects := make([]models.UnifiedProject, 0, len(entries))
	for id, raw := range entries {
		var p models.UnifiedProject
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decoding project %s: %w", id, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (b *RedisBackend) Save(ctx context.Context, projects []models.UnifiedProject) error {
	fields := make(map[string]interface{}, len(projects))
	for _, p := range projects {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding project %s: %w", p.ID, err)
		}
		fields[p.ID] = raw
	}

	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, b.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving projects hash: %w", err)
	}
	return nil
}
