package biz

import (
	"sync"
	"time"

	"clinictriage/cmd/triage-service/internal/domain"
)

// IntentCache caches classification results keyed by normalized text and
// language. Classification is a pure function of both, so cached results
// never go stale before their TTL.
type IntentCache struct {
	mu      sync.RWMutex
	entries map[string]*intentCacheEntry
	maxSize int
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

type intentCacheEntry struct {
	result    domain.IntentResult
	expiresAt time.Time
}

func NewIntentCache(maxSize int, ttl time.Duration) *IntentCache {
	if maxSize <= 0 {
		maxSize = 1024
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := &IntentCache{
		entries: make(map[string]*intentCacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Close stops the background sweep. Get and Set stay usable afterwards;
// expired entries are then only dropped lazily on Get. Idempotent.
func (c *IntentCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Get returns the cached result for the key when present and unexpired.
func (c *IntentCache) Get(key string) (domain.IntentResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		IntentCacheMisses.Inc()
		return domain.IntentResult{}, false
	}
	IntentCacheHits.Inc()
	return entry.result, true
}

// Set stores a result, evicting the soonest-expiring entry when full.
func (c *IntentCache) Set(key string, result domain.IntentResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = &intentCacheEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *IntentCache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *IntentCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
