package service

import (
	"sync"
	"time"
)

// TTLCache 簡單的記憶體快取，每個 key 可以有自己的存活時間
// 過期採 lazy 方式：Get 的時候才檢查，不開背景 goroutine 清理
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		items: make(map[string]cacheItem),
	}
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		// 過期了，順手刪掉
		c.Invalidate(key)
		return nil, false
	}
	return item.value, true
}

// Put 整個物件一次換掉 (last-write-wins)，不做欄位級的修改
func (c *TTLCache) Put(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}
