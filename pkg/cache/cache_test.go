package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/cache"
	"github.com/sandrolain/gostokhos/pkg/parser"
	"github.com/sandrolain/gostokhos/pkg/types"
)

func parsed(t *testing.T, src string) *types.Statement {
	t.Helper()
	stmt, err := parser.Parse(src)
	require.NoError(t, err)
	return stmt
}

func TestCacheLRU(t *testing.T) {
	c := cache.New(2)
	a, b, d := parsed(t, "1"), parsed(t, "2"), parsed(t, "3")

	c.Set("a", a)
	c.Set("b", b)

	// Touch a so that b becomes the LRU entry.
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	c.Set("d", d)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("d")
	assert.True(t, ok)

	assert.Equal(t, []string{"d", "a"}, c.Keys())
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestCacheReplace(t *testing.T) {
	c := cache.New(4)
	first, second := parsed(t, "1"), parsed(t, "2")

	c.Set("k", first)
	c.Set("k", second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, c.Len())
}

func TestCacheDefaultCapacity(t *testing.T) {
	assert.Equal(t, cache.DefaultCapacity, cache.New(0).Capacity())
	assert.Equal(t, 256, cache.New(-5).Capacity())
	assert.Equal(t, 10, cache.New(10).Capacity())
}

func TestGetOrParse(t *testing.T) {
	c := cache.New(8)
	calls := 0
	parse := func() (*types.Statement, error) {
		calls++
		return parser.Parse("num x := 1;")
	}

	s1, err := c.GetOrParse("num x := 1;", parse)
	require.NoError(t, err)
	s2, err := c.GetOrParse("num x := 1;", parse)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, 1, calls)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Len)
}

func TestGetOrParseDoesNotCacheErrors(t *testing.T) {
	c := cache.New(8)
	boom := errors.New("boom")
	calls := 0

	for i := 0; i < 3; i++ {
		_, err := c.GetOrParse("bad", func() (*types.Statement, error) {
			calls++
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, c.Len())
}

func TestInvalidateAndClear(t *testing.T) {
	c := cache.New(8)
	c.Set("a", parsed(t, "1"))
	c.Set("b", parsed(t, "2"))

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, cache.Stats{}, c.Stats())
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := cache.New(16)
	stmt := parsed(t, "1 + 1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n+j)%32)
				c.Set(key, stmt)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}
