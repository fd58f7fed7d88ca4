package openings

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const defaultListCacheTTL = 30 * time.Second

// listResult is the cached value for one list query.
type listResult struct {
	items []Opening
	total int
}

type cacheItem struct {
	value   listResult
	expires time.Time
}

// listCache memoizes list query results for the hot public listing page.
// Entries are busted wholesale on any write.
type listCache struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]cacheItem
}

func newListCache(ttl time.Duration) *listCache {
	return &listCache{
		ttl:   ttl,
		items: make(map[string]cacheItem),
	}
}

func (c *listCache) Get(key string) (listResult, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return listResult{}, false
	}
	if time.Now().After(item.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return listResult{}, false
	}
	return item.value, true
}

func (c *listCache) Set(key string, value listResult) {
	c.mu.Lock()
	c.items[key] = cacheItem{value: value, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *listCache) Bust() {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}

func listCacheKey(filters ListFilters) string {
	dept := "all"
	if filters.DepartmentID != nil {
		dept = fmt.Sprintf("%d", *filters.DepartmentID)
	}
	parts := []string{
		filters.Search,
		dept,
		filters.Location,
		filters.Status,
		fmt.Sprintf("%d", filters.Page),
		fmt.Sprintf("%d", filters.PageSize),
	}
	return "openings:" + strings.Join(parts, "|")
}
