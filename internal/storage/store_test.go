package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreSemantics(t *testing.T, store Store) {
	t.Helper()

	// Absent key.
	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// Write and read back.
	require.NoError(t, store.Set("transactions", `[{"id":"txn_1"}]`))
	v, ok, err := store.Get("transactions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"txn_1"}]`, v)

	// Overwrite.
	require.NoError(t, store.Set("transactions", `[]`))
	v, ok, err = store.Get("transactions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	// Delete, including a key that is already gone.
	require.NoError(t, store.Delete("transactions"))
	_, ok, err = store.Get("transactions")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Delete("transactions"))
}

func TestMemoryStore(t *testing.T) {
	testStoreSemantics(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banklytics.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	testStoreSemantics(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banklytics.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("budgets", `[]`))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	v, ok, err := store.Get("budgets")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}
