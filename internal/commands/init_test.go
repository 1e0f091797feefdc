package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/banklytics/banklytics/internal/ledger"
	"github.com/banklytics/banklytics/internal/storage"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	cmd := newInitCommand()

	require.NoError(t, runInit(cmd, dir, false))

	// Config written.
	_, err := os.Stat(filepath.Join(dir, "banklytics.yaml"))
	require.NoError(t, err)

	// Store created and empty.
	store, err := storage.OpenSQLite(filepath.Join(dir, "banklytics.db"))
	require.NoError(t, err)
	defer store.Close()
	svc := ledger.NewService(store, zap.NewNop())
	assert.Empty(t, svc.All())
}

func TestRunInit_Seed(t *testing.T) {
	dir := t.TempDir()
	cmd := newInitCommand()

	require.NoError(t, runInit(cmd, dir, true))

	store, err := storage.OpenSQLite(filepath.Join(dir, "banklytics.db"))
	require.NoError(t, err)
	defer store.Close()
	svc := ledger.NewService(store, zap.NewNop())
	assert.Len(t, svc.All(), 5)
}

func TestRunInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	cmd := newInitCommand()

	require.NoError(t, runInit(cmd, dir, false))
	err := runInit(cmd, dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
