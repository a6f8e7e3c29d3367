package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	logger := log.Logger
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		level     string
		verbosity int
		want      zerolog.Level
	}{
		{"", 0, zerolog.InfoLevel},
		{"warn", 0, zerolog.WarnLevel},
		{" DEBUG ", 0, zerolog.DebugLevel},
		{"nonsense", 0, zerolog.InfoLevel},
		{"error", 1, zerolog.DebugLevel},
		{"error", 3, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.level, tt.verbosity), "level %q verbosity %d", tt.level, tt.verbosity)
	}
}

func TestApply_WritesToFile(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "emptrack.log")

	Apply(Options{Level: "info", FilePath: path})
	log.Info().Str("table", "employee").Msg("Table created")
	log.Debug().Msg("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Table created")
	assert.Contains(t, string(data), "table=employee")
	assert.NotContains(t, string(data), "hidden")
}

func TestApply_VerboseConsole(t *testing.T) {
	restoreLogger(t)
	var console bytes.Buffer

	Apply(Options{Verbosity: 1, FilePath: "-", Console: &console})
	log.Debug().Msg("Menu action selected")

	assert.Contains(t, console.String(), "Menu action selected")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestApply_NoOutputs(t *testing.T) {
	restoreLogger(t)

	Apply(Options{FilePath: "-"})
	assert.Equal(t, zerolog.Disabled, log.Logger.GetLevel())
}
