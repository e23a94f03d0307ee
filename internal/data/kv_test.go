package data

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"cinelist/internal/biz"
	"cinelist/internal/conf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKeyValueStore checks the behaviour every backend must share
func exerciseKeyValueStore(t *testing.T, kv biz.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "a", `"one"`))
	require.NoError(t, kv.Set(ctx, "b", `[1,2,3]`))

	v, ok, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"one"`, v)

	require.NoError(t, kv.Set(ctx, "a", `"two"`))
	v, _, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `"two"`, v)

	require.NoError(t, kv.Delete(ctx, "a", "b", "never-set"))
	_, ok, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseKeyValueStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)
	defer store.Close()

	exerciseKeyValueStore(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	store, err := NewSQLiteStore(path)
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), collectionsKey, "[]"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(context.Background(), collectionsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestNewDataRejectsUnknownBackend(t *testing.T) {
	_, _, err := NewData(&conf.Data{Storage: "tape"}, testLogger)
	assert.Error(t, err)
}

func TestNewDataDefaultsToMemory(t *testing.T) {
	d, cleanup, err := NewData(nil, testLogger)
	require.NoError(t, err)
	defer cleanup()

	_, ok := NewKeyValueStore(d).(*MemoryStore)
	assert.True(t, ok)
}
