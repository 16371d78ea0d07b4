package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/expkit/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("GetPut", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)

		_, ok := c.Get("a")
		assert.False(t, ok)

		c.Put("a", 1)
		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("PutReplaces", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("a", 2)

		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("EvictsOldest", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.False(t, ok)
		_, ok = c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("GetRefreshesRecency", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		// b was least recently used once a was touched.
		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
	})

	t.Run("Remove", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Remove("a")

		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Zero(t, c.Len())
	})

	t.Run("PanicsOnInvalidCapacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, int](64)
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			g := g
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					c.Put(g*1000+i, i)
					c.Get(g * 1000)
				}
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 64)
	})
}
