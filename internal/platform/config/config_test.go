package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.Care.TickInterval)
	assert.Equal(t, time.Second, cfg.Care.SaveDelay)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
http:
  addr: ":9090"
care:
  tick_interval: 2s
storage:
  driver: sqlite
  sqlite_path: /tmp/pets.db
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.Care.TickInterval)
	// no tocado por el archivo
	assert.Equal(t, time.Second, cfg.Care.SaveDelay)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":            "7000",
		"DB_DSN":          "postgres://localhost/pets",
		"CARE_SAVE_DELAY": "250ms",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver, "DB_DSN alone selects postgres")
	assert.Equal(t, 250*time.Millisecond, cfg.Care.SaveDelay)
}

func TestApplyEnv_DSNKeepsDriverFromFile(t *testing.T) {
	env := map[string]string{"DB_DSN": "postgres://localhost/pets"}
	getenv := func(k string) string { return env[k] }
	dir := t.TempDir()

	explicit := filepath.Join(dir, "memory.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("storage:\n  driver: memory\n"), 0o644))
	cfg, err := LoadFromFile(explicit)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv(getenv))
	assert.Equal(t, DriverMemory, cfg.Storage.Driver, "driver chosen in file wins over DB_DSN")

	// Archivo sin driver: sigue valiendo la compat.
	implicit := filepath.Join(dir, "http.yaml")
	require.NoError(t, os.WriteFile(implicit, []byte("http:\n  addr: \":9090\"\n"), 0o644))
	cfg, err = LoadFromFile(implicit)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv(getenv))
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)

	// STORE_DRIVER manda sobre todo.
	env["STORE_DRIVER"] = DriverSQLite
	cfg, err = LoadFromFile(explicit)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv(getenv))
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestApplyEnv_RejectsBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "CARE_TICK_INTERVAL" {
			return "soon"
		}
		return ""
	})
	require.Error(t, err)
}

func TestValidate_DriverRequirements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = DriverKV
	assert.Error(t, cfg.Validate())

	cfg.Storage.KV.BaseURL = "https://pets.example.com"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Driver = "mongo"
	assert.Error(t, cfg.Validate())
}

func TestValidate_AuthNeedsAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.BaseURL = "https://auth.example.com"
	require.Error(t, cfg.Validate())

	cfg.Auth.APIKey = "k"
	require.NoError(t, cfg.Validate())
}
