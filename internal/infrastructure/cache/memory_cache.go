package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
)

// DefaultMemoryCapacity bounds the in-process cache when no size is configured.
const DefaultMemoryCapacity = 1024

type memoryEntry struct {
	expiresAt time.Time
	result    model.SimulationResult
}

// MemoryResultCache is an in-process port.ResultCache used when no Redis
// address is configured. It holds at most capacity results and evicts the
// least recently used one when full. Expired entries are dropped on read.
type MemoryResultCache struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// NewMemoryResultCache creates an empty cache holding at most capacity
// results. A non-positive capacity selects DefaultMemoryCapacity.
func NewMemoryResultCache(capacity int) *MemoryResultCache {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	entries, err := lru.New[string, memoryEntry](capacity)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &MemoryResultCache{
		entries: entries,
		now:     time.Now,
	}
}

func (c *MemoryResultCache) Get(_ context.Context, key string) (model.SimulationResult, bool, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return model.SimulationResult{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		return model.SimulationResult{}, false, nil
	}

	res := entry.result
	res.Schedule = entry.result.Rows()
	return res, true, nil
}

// Set stores a copy of the result. A non-positive ttl never expires, but the
// entry can still be evicted by newer ones.
func (c *MemoryResultCache) Set(_ context.Context, key string, result model.SimulationResult, ttl time.Duration) error {
	entry := memoryEntry{result: result}
	entry.result.Schedule = result.Rows()
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, entry)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryResultCache) Len() int {
	return c.entries.Len()
}
