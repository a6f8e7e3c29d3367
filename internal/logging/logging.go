// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultLogFilePath = "emptrack.log"
	DefaultMaxSizeMB   = 10
	DefaultMaxBackups  = 3
	DefaultMaxAgeDays  = 28
	DefaultCompress    = true

	timeFormat = "2006-01-02 15:04:05"
)

// Options control where log lines go and how many of them
type Options struct {
	Level     string // trace, debug, info, warn, error; verbosity overrides it
	Verbosity int    // number of -v flags
	FilePath  string // rotating log file; "-" disables the file
	Console   io.Writer
}

// Apply sets the global log level and output writers. The file always
// receives log lines; the console only when Verbosity > 0.
func Apply(opts Options) {
	zerolog.SetGlobalLevel(levelFor(opts.Level, opts.Verbosity))

	var writers []io.Writer
	if opts.Verbosity > 0 {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: timeFormat})
	}

	if opts.FilePath != "-" {
		path := opts.FilePath
		if path == "" {
			path = DefaultLogFilePath
		}
		if err := ensureLogDir(path); err != nil {
			log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
			log.Error().Err(err).Str("path", path).Msg("Failed to prepare log directory; file logging disabled")
			return
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out: &lumberjack.Logger{
				Filename:   path,
				MaxSize:    DefaultMaxSizeMB,
				MaxBackups: DefaultMaxBackups,
				MaxAge:     DefaultMaxAgeDays,
				Compress:   DefaultCompress,
			},
			TimeFormat: timeFormat,
			NoColor:    true,
		})
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

func levelFor(level string, verbosity int) zerolog.Level {
	switch {
	case verbosity >= 2:
		return zerolog.TraceLevel
	case verbosity == 1:
		return zerolog.DebugLevel
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
