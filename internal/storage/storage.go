// Package storage provides the key-value store the rest of the app persists
// through. Values are whole-collection JSON documents keyed by record name;
// there are no partial updates.
package storage

import (
	"context"
	"fmt"

	"github.com/JoeAtk/GymPT/internal/config"
)

// KV is the asynchronous string store every record goes through.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open builds the KV backend named by the config.
func Open(cfg *config.Config) (KV, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return NewMemoryKV(), nil
	case config.StorageRedis:
		return NewRedisKV(cfg.Redis.Host, cfg.Redis.Port)
	case config.StoragePostgres:
		return NewPostgresKV(cfg.DB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
