package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheInsert(t *testing.T) {
	c := NewCache[string](3)
	assert.Equal(t, 3, c.GetBudget())

	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("B", "valueB", 1))
	require.NoError(t, c.Insert("C", "valueC", 1))
	assert.Equal(t, 3, c.GetWeight())

	assert.Equal(t, ErrKeyExists, c.Insert("A", "other", 1))

	val, ok := c.Retrieve("A")
	require.True(t, ok)
	assert.Equal(t, "valueA", val)

	_, ok = c.Retrieve("missing")
	assert.False(t, ok)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache[int](2)
	require.NoError(t, c.Insert("evicted", 0, 1))
	require.NoError(t, c.Insert("A", 1, 1))
	require.NoError(t, c.Insert("B", 2, 1))
	assert.Equal(t, 2, c.GetWeight())

	_, ok := c.Retrieve("evicted")
	assert.False(t, ok)

	// Touching A makes B the eviction candidate.
	_, ok = c.Retrieve("A")
	require.True(t, ok)
	require.NoError(t, c.Insert("C", 3, 1))

	_, ok = c.Retrieve("B")
	assert.False(t, ok)
	for _, key := range []string{"A", "C"} {
		_, ok = c.Retrieve(key)
		assert.True(t, ok, key)
	}
}

func TestCacheWeights(t *testing.T) {
	c := NewCache[int](5)
	require.NoError(t, c.Insert("A", 1, 2))
	require.NoError(t, c.Insert("B", 2, 2))

	// Needs both older items gone.
	require.NoError(t, c.Insert("C", 3, 4))
	assert.Equal(t, 4, c.GetWeight())

	_, ok := c.Retrieve("A")
	assert.False(t, ok)
	_, ok = c.Retrieve("B")
	assert.False(t, ok)

	// An item heavier than the budget evicts everything, itself included.
	require.NoError(t, c.Insert("D", 4, 6))
	assert.Equal(t, 0, c.GetWeight())
}

func TestCacheClear(t *testing.T) {
	c := NewCache[int](2)
	require.NoError(t, c.Insert("A", 1, 1))
	c.Clear()

	assert.Equal(t, 0, c.GetWeight())
	_, ok := c.Retrieve("A")
	assert.False(t, ok)
	assert.NoError(t, c.Insert("A", 1, 1))
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache[int](100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			assert.NoError(t, c.Insert(key, i, 1))
			val, ok := c.Retrieve(key)
			assert.True(t, ok)
			assert.Equal(t, i, val)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.GetWeight())
}
