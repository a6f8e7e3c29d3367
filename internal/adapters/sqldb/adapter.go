// Package sqldb provides the database/sql adapter for the tracker tables.
// It speaks PostgreSQL, MySQL, SQL Server and SQLite through the same
// statements, rebinding placeholders per driver.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	_ "github.com/go-sql-driver/mysql"                  // MySQL/MariaDB driver
	_ "github.com/jackc/pgx/v5/stdlib"                   // PostgreSQL driver
	_ "github.com/microsoft/go-mssqldb"                  // SQL Server driver
	_ "github.com/tursodatabase/libsql-client-go/libsql" // libSQL/Turso driver
	_ "modernc.org/sqlite"                               // SQLite driver

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/core/ports"
	"github.com/enunezf/emptrack/internal/security"
)

var (
	_ ports.DatabasePort = (*Adapter)(nil)
	_ ports.SchemaPort   = (*Adapter)(nil)
	_ ports.TrackerStore = (*Adapter)(nil)

	_ ports.TrackerDatabase = (*Adapter)(nil)
)

// Adapter implements the DatabasePort, SchemaPort and TrackerStore interfaces
type Adapter struct {
	config   *domain.ConnectionConfig
	dialect  domain.Dialect
	db       *sql.DB
	approver security.Approver
}

// NewAdapter creates a new adapter. Writes are auto-approved until SetApprover is called.
func NewAdapter(config *domain.ConnectionConfig) *Adapter {
	return &Adapter{
		config:   config,
		dialect:  config.Dialect(),
		approver: security.NewAutoApprover(true),
	}
}

// Connect opens the pool and verifies the connection
func (a *Adapter) Connect(ctx context.Context) error {
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := sql.Open(a.config.DriverName(), a.config.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}

	// Set connection pool settings
	if a.config.MaxOpen > 0 {
		db.SetMaxOpenConns(a.config.MaxOpen)
	}
	if a.config.MaxIdle > 0 {
		db.SetMaxIdleConns(a.config.MaxIdle)
	}

	// Verify the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = db
	log.Debug().Str("driver", a.config.DriverName()).Str("dialect", string(a.dialect)).Msg("Database connection established")
	return nil
}

// Ping verifies the connection is still alive
func (a *Adapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return fmt.Errorf("not connected")
	}
	return a.db.PingContext(ctx)
}

// Close closes the database connection
func (a *Adapter) Close() error {
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}

// GetServerInfo retrieves information about the connected server
func (a *Adapter) GetServerInfo(ctx context.Context) (*domain.ServerInfo, error) {
	if a.db == nil {
		return nil, fmt.Errorf("not connected")
	}

	info := &domain.ServerInfo{
		Driver:     a.config.DriverName(),
		ServerName: a.config.Host,
	}

	var query string
	switch a.dialect {
	case domain.DialectPostgres:
		query = "SELECT version(), current_database()"
	case domain.DialectMySQL:
		query = "SELECT VERSION(), DATABASE()"
	case domain.DialectSQLServer:
		query = "SELECT @@VERSION, DB_NAME()"
	default:
		query = "SELECT 'SQLite ' || sqlite_version(), 'main'"
		info.ServerName = a.config.Database
	}

	if err := a.db.QueryRowContext(ctx, query).Scan(&info.Version, &info.Database); err != nil {
		return nil, fmt.Errorf("failed to get server info: %w", err)
	}

	return info, nil
}

// SetApprover sets the approver to use for operations
func (a *Adapter) SetApprover(approver security.Approver) {
	a.approver = approver
}

// approve asks the approver about a write; a refusal becomes domain.ErrCancelled
func (a *Adapter) approve(req security.ApprovalRequest) error {
	approved, err := a.approver.RequestApproval(req)
	if err != nil {
		return fmt.Errorf("approval error: %w", err)
	}
	if !approved {
		log.Info().Str("op", req.Operation).Msg("Write not approved")
		return domain.ErrCancelled
	}
	return nil
}

// execWithApproval runs a single write statement after approval
func (a *Adapter) execWithApproval(ctx context.Context, level security.ApprovalLevel, operation, impact, query string, args ...any) (int64, error) {
	if a.db == nil {
		return 0, fmt.Errorf("not connected")
	}

	query = rebind(a.dialect, query)
	if err := a.approve(security.ApprovalRequest{
		Operation:     operation,
		SQL:           query,
		Args:          args,
		Level:         level,
		ImpactSummary: impact,
	}); err != nil {
		return 0, err
	}

	res, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execution failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	log.Debug().Str("op", operation).Str("sql", squash(query)).Int64("rows", rows).Msg("Statement executed")
	return rows, nil
}

// insertWithApproval inserts one row and returns its generated id
func (a *Adapter) insertWithApproval(ctx context.Context, operation, table string, columns []string, args ...any) (int64, error) {
	if a.db == nil {
		return 0, fmt.Errorf("not connected")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	cols := strings.Join(columns, ", ")

	var query string
	switch a.dialect {
	case domain.DialectPostgres:
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", table, cols, placeholders)
	case domain.DialectSQLServer:
		query = fmt.Sprintf("INSERT INTO %s (%s) OUTPUT INSERTED.id VALUES (%s)", table, cols, placeholders)
	default:
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, placeholders)
	}
	query = rebind(a.dialect, query)

	if err := a.approve(security.ApprovalRequest{
		Operation: operation,
		SQL:       query,
		Args:      args,
		Level:     security.Modification,
	}); err != nil {
		return 0, err
	}

	var id int64
	switch a.dialect {
	case domain.DialectPostgres, domain.DialectSQLServer:
		if err := a.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("execution failed: %w", err)
		}
	default:
		res, err := a.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("execution failed: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read inserted id: %w", err)
		}
	}

	log.Debug().Str("op", operation).Str("sql", squash(query)).Int64("id", id).Msg("Row inserted")
	return id, nil
}

// Transaction wraps a function in a database transaction
func (a *Adapter) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	if a.db == nil {
		return fmt.Errorf("not connected")
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// query runs a read statement with placeholders rebound for the dialect
func (a *Adapter) query(ctx context.Context, operation, query string, args ...any) (*sql.Rows, error) {
	if a.db == nil {
		return nil, fmt.Errorf("not connected")
	}
	query = rebind(a.dialect, query)
	log.Trace().Str("op", operation).Str("sql", squash(query)).Msg("Query")
	return a.db.QueryContext(ctx, query, args...)
}

// queryRow runs a single-row read statement with placeholders rebound for the dialect
func (a *Adapter) queryRow(ctx context.Context, operation, query string, args ...any) (*sql.Row, error) {
	if a.db == nil {
		return nil, fmt.Errorf("not connected")
	}
	query = rebind(a.dialect, query)
	log.Trace().Str("op", operation).Str("sql", squash(query)).Msg("Query")
	return a.db.QueryRowContext(ctx, query, args...), nil
}
