package suggest

import (
	"context"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

// DefaultCacheSize bounds the number of distinct key sets remembered.
const DefaultCacheSize = 256

// Cached remembers the suggestions for each distinct key set. Failed calls
// are not cached.
type Cached struct {
	next  Suggester
	cache *lru.Cache[string, []string]
}

// NewCached wraps next with an LRU cache holding up to size key sets.
func NewCached(next Suggester, size int) (*Cached, error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

// Suggest implements Suggester.
func (c *Cached) Suggest(ctx context.Context, keys []string) ([]string, error) {
	id := cacheKey(keys)
	if fields, ok := c.cache.Get(id); ok {
		log.Debug("Field suggestions served from cache", "keys", len(keys))
		return append([]string(nil), fields...), nil
	}
	fields, err := c.next.Suggest(ctx, keys)
	if err != nil {
		return nil, err
	}
	c.cache.Add(id, append([]string(nil), fields...))
	return fields, nil
}

// Len returns the number of cached key sets.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// cacheKey is order independent. Key names may contain any character, so
// they are joined with a NUL separator.
func cacheKey(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
