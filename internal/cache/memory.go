package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process layer, so repeated parses within one invocation
// hit RAM instead of re-decoding cp949 files.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates an in-memory cache with the given default TTL
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, 10*time.Minute)}
}

func (c *Memory) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (c *Memory) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *Memory) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *Memory) Clear() error {
	c.cache.Flush()
	return nil
}
