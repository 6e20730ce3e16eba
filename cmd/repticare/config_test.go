package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	newTestEnv(t)
	dir := filepath.Join(t.TempDir(), "nested", "config")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, configFileExt))
	assert.Equal(t, types.BackendFile, v.GetString(cfgKeyBackend))
	assert.Equal(t, defaultListenAddr, v.GetString(cfgKeyListenAddr))
	assert.Equal(t, "info", v.GetString(cfgKeyLogLevel))
}

func TestLoadConfigKeepsExistingFile(t *testing.T) {
	newTestEnv(t)
	dir := t.TempDir()
	custom := "backend: sqlite\ndata_dir: /srv/reptiles\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(custom), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, types.BackendSQLite, v.GetString(cfgKeyBackend))
	assert.Equal(t, "/srv/reptiles", v.GetString(cfgKeyDataDir))

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	newTestEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("backend: sqlite\n"), 0o644))
	t.Setenv("REPTICARE_BACKEND", "memory")
	t.Setenv("REPTICARE_LISTEN_ADDR", "127.0.0.1:9999")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, types.BackendMemory, v.GetString(cfgKeyBackend))
	assert.Equal(t, "127.0.0.1:9999", v.GetString(cfgKeyListenAddr))
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	newTestEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("backend: [unclosed\n"), 0o644))

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestStoreConfigNormalizesBackend(t *testing.T) {
	newTestEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("backend: \" SQLite \"\n"), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)

	cfg := storeConfig(v, "/data")
	assert.Equal(t, types.Config{Backend: types.BackendSQLite, DataDir: "/data"}, cfg)
}
