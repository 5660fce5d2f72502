package pattern

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fivemoreminix/tedit/pkg/log"
)

// Defaults for NewCache.
const (
	// DefaultExpiration is how long an unused compiled pattern is kept.
	DefaultExpiration = 10 * time.Minute
	// DefaultCleanupInterval is how often expired patterns are purged.
	DefaultCleanupInterval = 30 * time.Minute
)

// A Cache keeps compiled patterns around so that repeating a filter does not
// recompile it. Entries expire after a period of disuse.
type Cache struct {
	cache *gocache.Cache
}

// NewCache returns a Cache whose entries live for expiration after their last
// use. Expired entries are purged every cleanupInterval.
func NewCache(expiration, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: gocache.New(expiration, cleanupInterval)}
}

func cacheKey(expr string, ignoreCase bool) string {
	if ignoreCase {
		return "i:" + expr
	}
	return "c:" + expr
}

// Compile returns the cached Pattern for expr, compiling and caching it on a
// miss. Compile errors are not cached.
func (c *Cache) Compile(expr string, ignoreCase bool) (*Pattern, error) {
	key := cacheKey(expr, ignoreCase)
	if v, found := c.cache.Get(key); found {
		if p, ok := v.(*Pattern); ok {
			log.Debug(log.CatPattern, "cache hit", "key", key)
			// Refresh the entry so patterns in use do not expire
			c.cache.SetDefault(key, p)
			return p, nil
		}
		log.Error(log.CatPattern, "wrong type assertion when getting value", "key", key)
	}
	p, err := Compile(expr, ignoreCase)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, p)
	return p, nil
}

// Len returns the number of cached patterns, expired ones included until the
// next cleanup.
func (c *Cache) Len() int { return c.cache.ItemCount() }

// Flush drops every cached pattern.
func (c *Cache) Flush() { c.cache.Flush() }
