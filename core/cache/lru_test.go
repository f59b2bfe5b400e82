package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU_GetPut(t *testing.T) {
	c := NewLRU[string, int](2)

	_, ok := c.Get("n-s---fa-")
	assert.False(t, ok)

	c.Put("n-s---fa-", 1)
	v, ok := c.Get("n-s---fa-")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("n-s---fa-", 2)
	v, _ = c.Get("n-s---fa-")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // b is now the oldest
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	s := c.Stats()
	assert.Equal(t, int64(1), s.Evictions)
	assert.Equal(t, 2, s.Size)
	assert.Equal(t, 2, s.MaxSize)
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[int, int](0)
	c.Put(1, 1)
	c.Get(1)
	c.Get(1)
	c.Get(2)

	s := c.Stats()
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, 0, s.MaxSize)
}

func TestLRU_Unbounded(t *testing.T) {
	c := NewLRU[int, int](-1)
	for i := 0; i < 1000; i++ {
		c.Put(i, i)
	}
	assert.Equal(t, 1000, c.Len())
	assert.Equal(t, int64(0), c.Stats().Evictions)
}

func TestLRU_Concurrency(t *testing.T) {
	c := NewLRU[string, int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*i)%80)
				c.Put(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}
