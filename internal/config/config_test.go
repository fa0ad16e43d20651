package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "networth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://api.example.com
  token: from-file
server:
  refresh: 30s
snapshot:
  cron: "0 0 * * * *"
`), 0o600))
	t.Setenv("NETWORTH_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, 30*time.Second, cfg.Server.Refresh)
	assert.Equal(t, "0 0 * * * *", cfg.Snapshot.Cron)
	assert.Equal(t, "networth.db", cfg.Database.SQLitePath)
	assert.Equal(t, ":8833", cfg.Server.Listen)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, time.Minute, cfg.Server.Refresh)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Error(t, cfg.Validate(), "token is required")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NETWORTH_API_URL=http://dotenv:9000\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("NETWORTH_API_URL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:9000", cfg.API.BaseURL)
}

func TestLoad_BadYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NETWORTH_TOKEN", "")
	cfg, err := Load("missing.yaml")
	require.NoError(t, err)

	assert.ErrorContains(t, cfg.Validate(), "api.token is required")

	cfg.API.Token = "t"
	cfg.Server.Refresh = 500 * time.Millisecond
	assert.ErrorContains(t, cfg.Validate(), "server.refresh")

	cfg.Server.Refresh = time.Second
	assert.NoError(t, cfg.Validate())
}
