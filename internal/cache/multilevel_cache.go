package cache

import (
	"context"
	"sync"
	"time"
)

// MultiLevelCache implements a multi-level cache with in-memory L1 and Valkey L2
type MultiLevelCache struct {
	l1Cache    map[string]cacheItem
	l2Cache    Cache
	l1MaxItems int
	mu         sync.RWMutex // Protects l1Cache
}

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

// NewMultiLevelCache creates a new multi-level cache over a Valkey L2
func NewMultiLevelCache(valkeyURL string, l1MaxItems int) (Cache, error) {
	l2Cache, err := NewValkeyCache(valkeyURL)
	if err != nil {
		return nil, err
	}

	return NewMultiLevelCacheWith(l2Cache, l1MaxItems), nil
}

// NewMultiLevelCacheWith wraps an existing L2 cache with an in-memory L1
func NewMultiLevelCacheWith(l2 Cache, l1MaxItems int) Cache {
	return &MultiLevelCache{
		l1Cache:    make(map[string]cacheItem),
		l2Cache:    l2,
		l1MaxItems: l1MaxItems,
	}
}

// Get retrieves from L1 first, then L2
func (c *MultiLevelCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	if item, exists := c.l1Cache[key]; exists {
		if time.Now().Before(item.expiresAt) {
			c.mu.RUnlock()
			return item.data, nil
		}
		// Expired, need to remove - upgrade to write lock
		c.mu.RUnlock()
		c.mu.Lock()
		// Double-check after acquiring write lock
		if item, exists := c.l1Cache[key]; exists && !time.Now().Before(item.expiresAt) {
			delete(c.l1Cache, key)
		}
		c.mu.Unlock()
	} else {
		c.mu.RUnlock()
	}

	data, err := c.l2Cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if data != nil {
		// Populate L1 cache
		c.setL1(key, data, time.Hour)
	}

	return data, nil
}

// Set stores in both L1 and L2
func (c *MultiLevelCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if err := c.l2Cache.Set(ctx, key, value, expiration); err != nil {
		return err
	}

	// L1 entries never outlive an hour
	l1Expiration := expiration
	if l1Expiration <= 0 || l1Expiration > time.Hour {
		l1Expiration = time.Hour
	}
	c.setL1(key, value, l1Expiration)

	return nil
}

// Delete removes from both levels
func (c *MultiLevelCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.l1Cache, key)
	c.mu.Unlock()

	return c.l2Cache.Delete(ctx, key)
}

// Close closes L2 connection
func (c *MultiLevelCache) Close() error {
	return c.l2Cache.Close()
}

// Health checks L2 health
func (c *MultiLevelCache) Health(ctx context.Context) error {
	return c.l2Cache.Health(ctx)
}

// setL1 sets a value in L1 cache with basic eviction
func (c *MultiLevelCache) setL1(key string, value []byte, expiration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.l1Cache) >= c.l1MaxItems {
		// Evict the entry closest to expiry
		oldestKey := ""
		oldestTime := time.Now().Add(24 * time.Hour)

		for k, item := range c.l1Cache {
			if item.expiresAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = item.expiresAt
			}
		}

		if oldestKey != "" {
			delete(c.l1Cache, oldestKey)
		}
	}

	c.l1Cache[key] = cacheItem{
		data:      value,
		expiresAt: time.Now().Add(expiration),
	}
}
