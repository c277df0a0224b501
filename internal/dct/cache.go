package dct

import "sync"

// Cache shares DCT instances between calls keyed by block size.
// Safe for concurrent use.
type Cache struct {
	data sync.Map
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return new(Cache)
}

// Get returns the cached transform for n x n blocks, building it on first use.
func (c *Cache) Get(n int) *DCT {
	if v, ok := c.data.Load(n); ok {
		return v.(*DCT)
	}
	d := New(n)
	actual, loaded := c.data.LoadOrStore(n, d)
	if loaded {
		return actual.(*DCT)
	}
	return d
}
