package server

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem[T any] struct {
	value     T
	expiresAt time.Time
}

// resultCache is a size-bounded LRU whose entries also expire after ttl.
// Safe for concurrent use.
type resultCache[T any] struct {
	storage *lru.Cache[string, cacheItem[T]]
	ttl     time.Duration
	now     func() time.Time
}

// newResultCache returns nil when size is not positive, which disables caching.
func newResultCache[T any](size int, ttl time.Duration) (*resultCache[T], error) {
	if size <= 0 {
		return nil, nil
	}
	storage, err := lru.New[string, cacheItem[T]](size)
	if err != nil {
		return nil, err
	}
	return &resultCache[T]{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func (c *resultCache[T]) get(key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().After(item.expiresAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.value, true
}

func (c *resultCache[T]) set(key string, value T) {
	if c == nil {
		return
	}
	c.storage.Add(key, cacheItem[T]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
}

func (c *resultCache[T]) len() int {
	if c == nil {
		return 0
	}
	return c.storage.Len()
}

func cacheKey(tone, query string) string {
	return tone + "|" + query
}
