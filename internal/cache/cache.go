package cache

import (
	"time"

	"github.com/danielsohn/chronica/internal/model"
)

// Cache stores parsed per-book verse lists between builds. Entries are opaque
// byte blobs; corpus keys encode file identity (path, size, mtime) so a
// changed source file can never serve stale verses.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FromConfig builds the configured cache, or nil when caching is disabled
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled || cfg.Dir == "" {
		return nil
	}
	return NewLayered(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
