package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// responseCache memoizes read results per collection. A nil *responseCache
// is valid and caches nothing.
//
// Each collection carries a generation that invalidate bumps. A read records
// the generation before fetching and only stores its result if no write
// landed in between, so a fetch that raced a write cannot park the old row.
type responseCache struct {
	c *cache.Cache

	mu   sync.Mutex
	gens map[string]uint64
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		return nil
	}
	return &responseCache{
		c:    cache.New(ttl, 2*ttl),
		gens: make(map[string]uint64),
	}
}

func (rc *responseCache) generation(collection string) uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.gens[collection]
}

func (rc *responseCache) getCachedData(collection, key string, fetchFunc func() (interface{}, error)) (interface{}, error) {
	if rc == nil {
		return fetchFunc()
	}
	if data, found := rc.c.Get(key); found {
		return data, nil
	}

	gen := rc.generation(collection)
	data, err := fetchFunc()
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.gens[collection] == gen {
		rc.c.Set(key, data, cache.DefaultExpiration)
	}
	return data, nil
}

// invalidate drops every key belonging to collection. Called after each
// successful write so this process never serves its own stale data.
func (rc *responseCache) invalidate(collection string) {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.gens[collection]++

	dropped := 0
	for key := range rc.c.Items() {
		if key == collection || strings.HasPrefix(key, collection+"/") || strings.HasPrefix(key, collection+"?") {
			rc.c.Delete(key)
			dropped++
		}
	}
	slog.Debug("cache invalidated", "collection", collection, "keys", dropped)
}
