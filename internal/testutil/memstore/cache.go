package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tourismrelay/shared/cache"
)

var _ cache.RedisCache = (*Cache)(nil)

// Cache is a RedisCache kept in a map. Durations are ignored.
type Cache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewCache() *Cache {
	return &Cache{values: map[string][]byte{}}
}

func (c *Cache) Save(_ context.Context, key string, value any, _ int) error {
	var raw []byte

	switch v := value.(type) {
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal cache value: %w", err)
		}

		raw = b
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = raw

	return nil
}

func (c *Cache) Get(_ context.Context, key string, value any) error {
	c.mu.Lock()
	raw, ok := c.values[key]
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("failed to get cache value: %w", cache.Nil)
	}

	if v, ok := value.(*string); ok {
		*v = string(raw)

		return nil
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, key)

	return nil
}

// Has reports whether key is currently cached.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.values[key]

	return ok
}
