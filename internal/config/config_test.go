package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banklytics.yaml")

	cfg := Default()
	cfg.Storage.Path = "/tmp/ledger.db"
	cfg.Report.CurrencySymbol = "$"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.db", loaded.Storage.Path)
	assert.Equal(t, "$", loaded.Report.CurrencySymbol)
	assert.Equal(t, "imported_account", loaded.Import.DefaultAccountID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banklytics.yaml")
	require.NoError(t, Save(path, Default()))

	t.Setenv("BANKLYTICS_STORAGE_PATH", "/var/data/kv.db")
	t.Setenv("BANKLYTICS_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/data/kv.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "banklytics.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}
