package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_DSN", "DB_SSLMODE", "DB_MAX_OPEN", "DB_MAX_IDLE",
	"EMPTRACK_LOG_FILE", "EMPTRACK_LOG_LEVEL", "EMPTRACK_CONFIRM",
}

// clearEnv unsets every config variable for the duration of the test.
// godotenv writes with os.Setenv, so each variable is first registered
// with t.Setenv to have it restored afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 0, cfg.Port)
	assert.Equal(t, "employees_db", cfg.Database)
	assert.Equal(t, "destructive", cfg.Confirm)
	assert.Equal(t, "emptrack.log", cfg.LogFile)

	conn := cfg.Connection()
	assert.Equal(t, 5432, conn.EffectivePort())
	assert.Equal(t, 10, conn.MaxOpen)
	assert.Equal(t, 5, conn.MaxIdle)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "tracker.env")
	content := strings.Join([]string{
		"DB_DRIVER=mysql",
		"DB_NAME=company",
		"DB_USER=root",
		"DB_PASSWORD=secret",
		"EMPTRACK_CONFIRM=all",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	conn := cfg.Connection()
	assert.Equal(t, "mysql", conn.DriverName())
	assert.Equal(t, 3306, conn.EffectivePort())
	assert.Equal(t, "company", conn.Database)
	assert.Equal(t, "root", conn.User)
	assert.Equal(t, "all", cfg.Confirm)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "from_env")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Database)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
