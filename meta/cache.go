package meta

import (
	"errors"
	"reflect"

	"github.com/hashicorp/golang-lru/simplelru"
)

// DefaultCacheCapacity is the number of type pairs kept by default.
const DefaultCacheCapacity = 2048

var ErrCapacity = errors.New("cache capacity must be positive")

// pairKey is an unordered type pair: first sorts before second.
type pairKey struct {
	first, second reflect.Type
}

func keyOf(a, b reflect.Type) pairKey {
	if less(b, a) {
		a, b = b, a
	}

	return pairKey{first: a, second: b}
}

func less(a, b reflect.Type) bool {
	na, nb := fullName(a), fullName(b)
	if na != nb {
		return na < nb
	}

	// same name: function local types
	return reflect.ValueOf(a).Pointer() < reflect.ValueOf(b).Pointer()
}

func fullName(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

// Cache is a bounded LRU of Metadata keyed by unordered type pair. It is not
// safe for concurrent use.
type Cache struct {
	lru *simplelru.LRU
}

// NewCache returns a cache holding up to capacity pairs. onEvict, when not
// nil, is called with every entry removed from the cache.
func NewCache(capacity int, onEvict func(*Metadata)) (*Cache, error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}

	var cb simplelru.EvictCallback
	if onEvict != nil {
		cb = func(_, value any) {
			onEvict(value.(*Metadata))
		}
	}

	lru, err := simplelru.NewLRU(capacity, cb)
	if err != nil {
		return nil, err
	}

	return &Cache{lru: lru}, nil
}

// Get returns the metadata of the pair in either order.
func (c *Cache) Get(a, b reflect.Type) (*Metadata, bool) {
	v, ok := c.lru.Get(keyOf(a, b))
	if !ok {
		return nil, false
	}

	return v.(*Metadata), true
}

// Add stores md under its unordered pair. An existing entry for the pair is
// replaced.
func (c *Cache) Add(md *Metadata) {
	c.lru.Add(keyOf(md.A, md.B), md)
}

// Len is the number of cached pairs.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every cached pair.
func (c *Cache) Purge() {
	c.lru.Purge()
}
