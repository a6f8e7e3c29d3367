package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against fresh flag state
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	driver, host, database, user, password, dsn = "", "", "", "", "", ""
	port, verbosity = 0, 0
	dryRun, assumeYes = false, false
	envFile = filepath.Join(t.TempDir(), "missing.env")
	logFile = "-"
	outputFile, applySchema, seedData = "", false, false
	settings = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(append(args, "--env-file", envFile, "--log-file", "-"))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func sqliteArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--driver", "sqlite", "--database", filepath.Join(t.TempDir(), "tracker.db")}
}

func TestSchema_PrintsDDL(t *testing.T) {
	out, err := execute(t, "schema", "--driver", "mysql", "--database", "employees_db")
	require.NoError(t, err)

	assert.Contains(t, out, "-- Dialect: mysql")
	assert.Contains(t, out, "CREATE TABLE `department`")
	assert.Contains(t, out, "CREATE TABLE `employee`")
	assert.NotContains(t, out, "GO\n")
}

func TestSchema_SQLServerBatches(t *testing.T) {
	out, err := execute(t, "schema", "--driver", "sqlserver", "--database", "employees_db")
	require.NoError(t, err)
	assert.Contains(t, out, "GO\n")
}

func TestSchema_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")

	out, err := execute(t, "schema", "--driver", "sqlite", "--database", "x.db", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DDL written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `CREATE TABLE "role"`)
}

func TestSchema_InvalidDriver(t *testing.T) {
	_, err := execute(t, "schema", "--driver", "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error")
}

func TestSchema_SeedThenList(t *testing.T) {
	db := sqliteArgs(t)

	out, err := execute(t, append([]string{"schema", "--seed"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Created table employee")
	assert.Contains(t, out, "Sample data loaded")

	out, err = execute(t, append([]string{"schema", "--apply"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "All tables already exist.")

	out, err = execute(t, append([]string{"list", "employees"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Kevin")
	assert.Contains(t, out, "Ashley Rodriguez")

	out, err = execute(t, append([]string{"list", "managers"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Sarah Lourd")
	assert.NotContains(t, out, "Tom Allen")

	out, err = execute(t, append([]string{"list", "budgets"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Utilized Budget")
	assert.Contains(t, out, "440000.00")
}

func TestSchema_DryRun(t *testing.T) {
	out, err := execute(t, append([]string{"schema", "--apply", "--dry-run"}, sqliteArgs(t)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "create table department")
	assert.Contains(t, out, "Dry run: no changes were made.")
}

func TestConnect_SQLite(t *testing.T) {
	out, err := execute(t, append([]string{"connect"}, sqliteArgs(t)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Connection successful")
	assert.Contains(t, out, "SQLite")
	assert.Contains(t, out, "Ping:")
}

func TestGetConnectionConfig_FlagsOverride(t *testing.T) {
	_, err := execute(t, "schema", "--driver", "mysql", "--host", "db.internal", "--port", "3307", "--user", "app")
	require.NoError(t, err)

	conn := GetConnectionConfig()
	assert.Equal(t, "mysql", conn.DriverName())
	assert.Equal(t, "db.internal", conn.Host)
	assert.Equal(t, 3307, conn.EffectivePort())
	assert.Equal(t, "app", conn.User)
}

func TestNewApprover_UnknownPolicy(t *testing.T) {
	t.Setenv("EMPTRACK_CONFIRM", "sometimes")
	_, err := execute(t, append([]string{"schema", "--apply"}, sqliteArgs(t)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown confirmation policy")
}
