package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate_BuildsOncePerKey(t *testing.T) {
	registry := NewRegistry[int]()
	var builds int32

	for i := 0; i < 5; i++ {
		value, err := registry.GetOrCreate("medium/int8", func() (int, error) {
			atomic.AddInt32(&builds, 1)
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, value)
	}

	assert.Equal(t, int32(1), builds)
	assert.Equal(t, 1, registry.Len())
}

func TestGetOrCreate_DistinctKeysGetDistinctEntries(t *testing.T) {
	registry := NewRegistry[string]()

	a, err := registry.GetOrCreate("a", func() (string, error) { return "first", nil })
	require.NoError(t, err)
	b, err := registry.GetOrCreate("b", func() (string, error) { return "second", nil })
	require.NoError(t, err)

	assert.Equal(t, "first", a)
	assert.Equal(t, "second", b)
	assert.Equal(t, 2, registry.Len())
}

func TestGetOrCreate_BuildErrorIsNotCached(t *testing.T) {
	registry := NewRegistry[int]()

	_, err := registry.GetOrCreate("key", func() (int, error) {
		return 0, errors.New("model load failed")
	})
	require.Error(t, err)
	assert.Equal(t, 0, registry.Len())

	value, err := registry.GetOrCreate("key", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestGetOrCreate_ConcurrentCallersShareOneBuild(t *testing.T) {
	registry := NewRegistry[int]()
	var builds int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := registry.GetOrCreate("shared", func() (int, error) {
				atomic.AddInt32(&builds, 1)
				return 1, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 1, value)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds)
}
