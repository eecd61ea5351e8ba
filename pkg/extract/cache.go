package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// CacheStats hit and size counters
type CacheStats struct {
	Size    int     `json:"size"`
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	HitRate float64 `json:"hitRate"`
}

type cacheEntry struct {
	fields     Fields
	expiry     time.Time
	lastAccess time.Time
}

// Cache holds model extractions per transcript so a repeated transcript is not
// sent to the model again. Entries expire after ttl; when full the least
// recently used entry is evicted.
type Cache struct {
	mu         sync.Mutex
	data       map[string]cacheEntry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	hits   int
	misses int
}

// NewCache creates a cache
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		data:       make(map[string]cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

func cacheKey(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return hex.EncodeToString(sum[:])
}

// Get a copy of the cached fields for transcript
func (c *Cache) Get(transcript string) (Fields, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(transcript)
	entry, ok := c.data[key]
	now := c.now()
	if ok && now.After(entry.expiry) {
		delete(c.data, key)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}

	c.hits++
	entry.lastAccess = now
	c.data[key] = entry
	return copyFields(entry.fields), true
}

// Set stores fields for transcript
func (c *Cache) Set(transcript string, fields Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(transcript)
	if _, exists := c.data[key]; !exists && len(c.data) >= c.maxEntries {
		c.evictOldest()
	}

	now := c.now()
	c.data[key] = cacheEntry{
		fields:     copyFields(fields),
		expiry:     now.Add(c.ttl),
		lastAccess: now,
	}
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, entry := range c.data {
		if first || entry.lastAccess.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.lastAccess
			first = false
		}
	}
	if !first {
		delete(c.data, oldestKey)
	}
}

// Stats current counters
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{Size: len(c.data), Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

func copyFields(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
