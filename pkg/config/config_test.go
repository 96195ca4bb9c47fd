package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
  uniform_errors: true
  shutdown_timeout: 3s
db:
  driver: sqlite
  path: /tmp/test.db
log:
  level: debug
  enforce_room_access: true
auth:
  bcrypt_cost: 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Server.UniformErrors)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.EnforceRoomAccess)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	// 未指定的欄位使用預設值
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5432, cfg.DB.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  host: filehost\n"), 0o600))

	t.Setenv("ROOMLOG_DB_HOST", "envhost")
	t.Setenv("ROOMLOG_SERVER_ADDRESS", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "envhost", cfg.DB.Host)
	assert.Equal(t, ":7070", cfg.Server.Address)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}
