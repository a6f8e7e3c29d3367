// Package config loads emptrack settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/enunezf/emptrack/internal/core/domain"
)

// DefaultEnvFile is read from the working directory when no other file is given
const DefaultEnvFile = ".env"

// Config is the environment-backed configuration
type Config struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT"`
	Database string `env:"DB_NAME" envDefault:"employees_db"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	DSN      string `env:"DB_DSN"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpen  int    `env:"DB_MAX_OPEN" envDefault:"10"`
	MaxIdle  int    `env:"DB_MAX_IDLE" envDefault:"5"`

	LogFile  string `env:"EMPTRACK_LOG_FILE" envDefault:"emptrack.log"`
	LogLevel string `env:"EMPTRACK_LOG_LEVEL" envDefault:"info"`
	// Confirm is the write confirmation policy: destructive, all or none
	Confirm string `env:"EMPTRACK_CONFIRM" envDefault:"destructive"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads envFile into the process environment (a missing file is
// ignored) and parses the result. Variables already set win over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Connection converts the database settings into a ConnectionConfig
func (c *Config) Connection() *domain.ConnectionConfig {
	conn := domain.NewConnectionConfig()
	conn.Driver = c.Driver
	conn.Host = c.Host
	conn.Port = c.Port
	conn.Database = c.Database
	conn.User = c.User
	conn.Password = c.Password
	conn.DSN = c.DSN
	conn.SSLMode = c.SSLMode
	if c.MaxOpen > 0 {
		conn.MaxOpen = c.MaxOpen
	}
	if c.MaxIdle > 0 {
		conn.MaxIdle = c.MaxIdle
	}
	return conn
}
