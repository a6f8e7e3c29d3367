// Package domain contains the core domain models for emptrack.
package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Dialect identifies the SQL flavour spoken by a driver
type Dialect string

const (
	DialectPostgres  Dialect = "postgres"
	DialectMySQL     Dialect = "mysql"
	DialectSQLServer Dialect = "sqlserver"
	DialectSQLite    Dialect = "sqlite"
)

// NormalizeDriver maps user-friendly driver names to the registered database/sql driver name
func NormalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql", "pgsql", "pgx":
		return "pgx"
	case "mysql", "mariadb":
		return "mysql"
	case "mssql", "sqlserver":
		return "sqlserver"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "libsql", "turso":
		return "libsql"
	default:
		return driver
	}
}

// DialectFor returns the SQL dialect of a normalized driver name
func DialectFor(driver string) Dialect {
	switch NormalizeDriver(driver) {
	case "mysql":
		return DialectMySQL
	case "sqlserver":
		return DialectSQLServer
	case "sqlite", "libsql":
		return DialectSQLite
	default:
		return DialectPostgres
	}
}

// ConnectionConfig holds the configuration for a database connection
type ConnectionConfig struct {
	Driver   string // postgres, mysql, sqlserver, sqlite, libsql
	Host     string // Server hostname or IP
	Port     int    // Port number (0 means driver default)
	Database string // Database name, or file path for sqlite
	User     string // Username
	Password string // Password
	DSN      string // Full DSN, overrides the fields above
	SSLMode  string // Postgres sslmode
	MaxOpen  int    // Max open connections
	MaxIdle  int    // Max idle connections
	AppName  string // Application name for connection
}

// NewConnectionConfig creates a new connection config with defaults
func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Driver:  "postgres",
		Host:    "localhost",
		SSLMode: "disable",
		MaxOpen: 10,
		MaxIdle: 5,
		AppName: "emptrack",
	}
}

// DriverName returns the database/sql driver name for this config
func (c *ConnectionConfig) DriverName() string {
	return NormalizeDriver(c.Driver)
}

// Dialect returns the SQL dialect for this config
func (c *ConnectionConfig) Dialect() Dialect {
	return DialectFor(c.Driver)
}

// EffectivePort returns the configured port or the driver default
func (c *ConnectionConfig) EffectivePort() int {
	if c.Port != 0 {
		return c.Port
	}
	switch c.DriverName() {
	case "mysql":
		return 3306
	case "sqlserver":
		return 1433
	case "pgx":
		return 5432
	default:
		return 0
	}
}

// ConnectionString generates the DSN for the configured driver
func (c *ConnectionConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch c.DriverName() {
	case "sqlite":
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.Database)

	case "mysql":
		// clientFoundRows makes UPDATE report matched rows, not changed rows
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
			c.User, c.Password, c.Host, c.EffectivePort(), c.Database)

	case "sqlserver":
		query := url.Values{}
		query.Add("database", c.Database)
		query.Add("app name", c.AppName)
		return (&url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.EffectivePort()),
			RawQuery: query.Encode(),
		}).String()

	default:
		query := url.Values{}
		if c.SSLMode != "" {
			query.Add("sslmode", c.SSLMode)
		}
		query.Add("application_name", c.AppName)
		u := &url.URL{
			Scheme:   "postgres",
			Host:     fmt.Sprintf("%s:%d", c.Host, c.EffectivePort()),
			Path:     "/" + c.Database,
			RawQuery: query.Encode(),
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		return u.String()
	}
}

// ValidateDriver checks only that the driver is one emptrack can speak
func (c *ConnectionConfig) ValidateDriver() error {
	switch c.DriverName() {
	case "pgx", "mysql", "sqlserver", "sqlite", "libsql":
		return nil
	default:
		return fmt.Errorf("unsupported driver %q (supported: postgres, mysql, sqlserver, sqlite, libsql)", c.Driver)
	}
}

// Validate checks if the connection config is valid
func (c *ConnectionConfig) Validate() error {
	if err := c.ValidateDriver(); err != nil {
		return err
	}

	if c.DSN != "" {
		return nil
	}

	if c.DriverName() == "libsql" {
		return fmt.Errorf("libsql requires a DSN (libsql://host?authToken=...)")
	}

	if c.Database == "" {
		return fmt.Errorf("database is required")
	}

	if c.DriverName() == "sqlite" {
		return nil
	}

	if c.Host == "" {
		return fmt.Errorf("host is required")
	}

	if c.User == "" {
		return fmt.Errorf("user is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	return nil
}

// SafeString returns a description of the connection with the password masked
func (c *ConnectionConfig) SafeString() string {
	if c.DSN != "" {
		return fmt.Sprintf("Driver=%s; DSN=%s", c.DriverName(), maskDSN(c.DSN))
	}
	if c.DriverName() == "sqlite" {
		return fmt.Sprintf("Driver=sqlite; File=%s", c.Database)
	}
	return fmt.Sprintf("Driver=%s; Server=%s:%d; Database=%s; User=%s; Password=***",
		c.DriverName(), c.Host, c.EffectivePort(), c.Database, c.User)
}

func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	q := u.Query()
	if q.Has("authToken") {
		q.Set("authToken", "***")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ServerInfo holds information about the connected server
type ServerInfo struct {
	Version    string // Server version string
	Driver     string // database/sql driver name
	ServerName string // Server or file name
	Database   string // Current database
}
