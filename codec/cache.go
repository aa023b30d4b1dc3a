package codec

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// DefaultCache is the process-wide codec cache.
var DefaultCache = NewCache()

type cacheKey struct {
	typ      reflect.Type
	strategy CaseStrategy
	registry uint64
}

// Cache memoizes derived codecs. It is safe for concurrent use; concurrent
// first requests for the same key share a single derivation.
type Cache struct {
	nodes       sync.Map // cacheKey -> *node
	group       singleflight.Group
	derivations atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) node(t reflect.Type, opts Options) (*node, error) {
	key := cacheKey{typ: t, strategy: opts.Case, registry: opts.Extra.ID()}
	if n, ok := c.nodes.Load(key); ok {
		return n.(*node), nil
	}

	flight := fmt.Sprintf("%p/%d/%d", t, opts.Case, key.registry)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		if n, ok := c.nodes.Load(key); ok {
			return n, nil
		}
		n, err := derive(t, opts)
		if err != nil {
			return nil, err
		}
		c.derivations.Add(1)
		c.nodes.Store(key, n)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*node), nil
}

// Len returns the number of cached codecs.
func (c *Cache) Len() int {
	count := 0
	c.nodes.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Derivations returns how many codecs have been derived since the cache was
// created or last reset.
func (c *Cache) Derivations() int64 {
	return c.derivations.Load()
}

// Reset drops every cached codec.
func (c *Cache) Reset() {
	c.nodes.Range(func(k, _ any) bool {
		c.nodes.Delete(k)
		return true
	})
	c.derivations.Store(0)
}
