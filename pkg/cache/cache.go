// Package cache keeps recently parsed Stokhos statements keyed by their
// source text.
//
// The engine consults it when WithCaching is on. Simulation scripts repeat
// the same handful of statements (tick(), a histogram call, a reassignment)
// many times, and a hit skips lexing and parsing. Parsed statements are
// immutable, so one cached tree can be validated and executed any number of
// times.
//
// # Example
//
//	c := cache.New(1024)
//	stmt, err := c.GetOrParse("x := 'uniform()';", parse)
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/sandrolain/gostokhos/pkg/types"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

type entry struct {
	source string
	stmt   *types.Statement
}

// Cache holds at most Capacity statements and drops the one used longest
// ago when a new source arrives. All methods may be called concurrently.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	order    *list.List // front is the most recent use
	bySource map[string]*list.Element

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
}

// New returns an empty cache for capacity statements.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		bySource: make(map[string]*list.Element, capacity),
	}
}

// Get returns the statement parsed from source and marks it as just used.
func (c *Cache) Get(source string) (*types.Statement, bool) {
	c.mu.RLock()
	el, ok := c.bySource[source]
	front := ok && c.order.Front() == el
	c.mu.RUnlock()

	if ok && !front {
		el, ok = c.touch(source)
	}
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return el.Value.(*entry).stmt, true
}

// touch moves source to the front. It reports false when another goroutine
// evicted it between the read and write locks.
func (c *Cache) touch(source string) (*list.Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.bySource[source]
	if ok {
		c.order.MoveToFront(el)
	}
	return el, ok
}

// Set stores stmt under source, replacing any previous statement.
func (c *Cache) Set(source string, stmt *types.Statement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.bySource[source]; ok {
		el.Value.(*entry).stmt = stmt
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.bySource[source] = c.order.PushFront(&entry{source: source, stmt: stmt})
}

// GetOrParse returns the cached statement for source, calling parse and
// storing its result on a miss. Failed parses are not stored.
func (c *Cache) GetOrParse(source string, parse func() (*types.Statement, error)) (*types.Statement, error) {
	if stmt, ok := c.Get(source); ok {
		return stmt, nil
	}
	stmt, err := parse()
	if err != nil {
		return nil, err
	}
	c.Set(source, stmt)
	return stmt, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bySource)
}

func (c *Cache) Capacity() int { return c.capacity }

// Stats returns the counters accumulated since creation or the last Clear.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.Len(),
	}
}

// Keys returns the cached source texts, most recently used first.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.bySource))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry).source)
	}
	return keys
}

// Invalidate forgets source; absent sources are ignored.
func (c *Cache) Invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.bySource[source]; ok {
		c.order.Remove(el)
		delete(c.bySource, source)
	}
}

// Clear empties the cache and zeroes its counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.bySource = make(map[string]*list.Element, c.capacity)
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// evictOldest requires c.mu held for writing.
func (c *Cache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.bySource, el.Value.(*entry).source)
	c.evictions.Add(1)
}
