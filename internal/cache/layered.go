package cache

import "time"

// Layered checks memory before disk and promotes disk hits to memory
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates the standard memory-over-disk cache
func NewLayered(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL),
		disk:   NewDisk(diskDir, diskTTL),
	}
}

func (c *Layered) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

func (c *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *Layered) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

func (c *Layered) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
