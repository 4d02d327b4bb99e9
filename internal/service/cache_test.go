package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_PutGet(t *testing.T) {
	cache := NewTTLCache()

	cache.Put("key", "value", time.Minute)

	got, ok := cache.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestTTLCache_Miss(t *testing.T) {
	cache := NewTTLCache()

	_, ok := cache.Get("nope")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	cache := NewTTLCache()

	cache.Put("key", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestTTLCache_Invalidate(t *testing.T) {
	cache := NewTTLCache()

	cache.Put("key", "value", time.Minute)
	cache.Invalidate("key")

	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestTTLCache_OverwriteReplacesWhole(t *testing.T) {
	cache := NewTTLCache()

	cache.Put("key", map[string]int{"a": 1}, time.Minute)
	cache.Put("key", map[string]int{"b": 2}, time.Minute)

	got, ok := cache.Get("key")
	assert.True(t, ok)
	// 整個物件換掉，不是欄位合併
	assert.Equal(t, map[string]int{"b": 2}, got)
}
