package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	cache := NewCache(10, time.Hour)

	_, ok := cache.Get("hello there")
	assert.False(t, ok)

	cache.Set("hello there", Fields{"first_name": "Ann"})
	fields, ok := cache.Get("hello there")
	require.True(t, ok)
	assert.Equal(t, Fields{"first_name": "Ann"}, fields)

	// callers get their own copy
	fields["first_name"] = "Bob"
	fields, _ = cache.Get("hello there")
	assert.Equal(t, "Ann", fields["first_name"])

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(10, time.Minute)
	now := time.Date(2024, 9, 21, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("a", Fields{"city": "Singapore"})
	now = now.Add(2 * time.Minute)

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().Size)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCache(2, time.Hour)
	now := time.Date(2024, 9, 21, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	cache.Set("a", Fields{"bio": "a"})
	cache.Set("b", Fields{"bio": "b"})
	cache.Get("a")
	cache.Set("c", Fields{"bio": "c"})

	_, ok := cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestLLMExtractorUsesCache(t *testing.T) {
	provider := &stubProvider{reply: `{"first_name":"Ann"}`}
	e := NewLLMExtractor(provider, nil).WithCache(NewCache(10, time.Hour))

	for i := 0; i < 3; i++ {
		fields, err := e.Extract(context.Background(), "My name is Ann")
		require.NoError(t, err)
		assert.Equal(t, "Ann", fields["first_name"])
	}
	assert.Equal(t, 1, provider.calls)
}
