package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("server.addr", ":5000"))
	require.NoError(t, store.Set("server.addr", ":8080"))

	val, ok := store.Get("server.addr")
	assert.True(t, ok)
	assert.Equal(t, ":8080", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("name", "bureau"))
	require.NoError(t, store.Set("number", 42))

	assert.Equal(t, "bureau", store.GetString("name"))
	assert.Equal(t, "", store.GetString("number"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("int", 10))
	require.NoError(t, store.Set("int64", int64(20)))
	require.NoError(t, store.Set("float", 30.9))
	require.NoError(t, store.Set("string", "40"))

	assert.Equal(t, 10, store.GetInt("int"))
	assert.Equal(t, 20, store.GetInt("int64"))
	assert.Equal(t, 30, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("string"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("float", 2.5))
	require.NoError(t, store.Set("int", 3))
	require.NoError(t, store.Set("int64", int64(4)))
	require.NoError(t, store.Set("string", "5"))

	assert.Equal(t, 2.5, store.GetFloat("float"))
	assert.Equal(t, 3.0, store.GetFloat("int"))
	assert.Equal(t, 4.0, store.GetFloat("int64"))
	assert.Equal(t, 0.0, store.GetFloat("string"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			assert.NoError(t, store.Set(key, n))
			assert.Equal(t, n, store.GetInt(key))
		}(i)
	}
	wg.Wait()

	for i := range 50 {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
