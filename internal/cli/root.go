// Package cli provides the command-line interface for emptrack.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/enunezf/emptrack/internal/adapters/sqldb"
	"github.com/enunezf/emptrack/internal/config"
	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/core/ports"
	"github.com/enunezf/emptrack/internal/core/services"
	"github.com/enunezf/emptrack/internal/logging"
	"github.com/enunezf/emptrack/internal/menu"
	"github.com/enunezf/emptrack/internal/prompt"
	"github.com/enunezf/emptrack/internal/security"
)

var (
	// Global flags
	driver    string
	host      string
	port      int
	database  string
	user      string
	password  string
	dsn       string
	envFile   string
	dryRun    bool
	assumeYes bool
	verbosity int
	logFile   string

	// settings is loaded before any command runs
	settings *config.Config

	// Version information
	version = "0.1.0"
)

// connectTimeout bounds opening the pool and the first ping
const connectTimeout = 30 * time.Second

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "emptrack",
	Short: "emptrack - employee, role and department tracker",
	Long: `emptrack is an interactive menu for managing a company's departments,
roles and employees stored in a SQL database.

Running it without a subcommand connects to the database, creates any
missing tables and opens the main menu.

Connection settings come from a .env file and DB_* environment variables;
flags override both.

Example:
  emptrack --driver sqlite --database tracker.db
  emptrack --host db.internal --database employees_db --user postgres --password secret`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTracker,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: postgres, mysql, sqlserver, sqlite, libsql (env DB_DRIVER)")
	rootCmd.PersistentFlags().StringVarP(&host, "host", "H", "", "Database hostname or IP address (env DB_HOST)")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Database port, 0 for the driver default (env DB_PORT)")
	rootCmd.PersistentFlags().StringVarP(&database, "database", "d", "", "Database name, or file path for sqlite (env DB_NAME)")
	rootCmd.PersistentFlags().StringVarP(&user, "user", "u", "", "Database user (env DB_USER)")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "Database password (env DB_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Full connection string, overrides the fields above (env DB_DSN)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Environment file to load")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show writes without executing them")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Approve every write without asking")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Log to stderr (-v debug, -vv trace)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path, \"-\" to disable (env EMPTRACK_LOG_FILE)")
}

// setup loads configuration and configures logging
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if logFile != "" {
		loaded.LogFile = logFile
	}

	logging.Apply(logging.Options{
		Level:     loaded.LogLevel,
		Verbosity: verbosity,
		FilePath:  loaded.LogFile,
		Console:   cmd.ErrOrStderr(),
	})

	settings = loaded
	log.Debug().Str("command", cmd.Name()).Str("version", version).Msg("Starting")
	return nil
}

// GetConnectionConfig builds a ConnectionConfig from the environment and the global flags
func GetConnectionConfig() *domain.ConnectionConfig {
	conn := domain.NewConnectionConfig()
	if settings != nil {
		conn = settings.Connection()
	}

	if driver != "" {
		conn.Driver = driver
	}
	if host != "" {
		conn.Host = host
	}
	if port != 0 {
		conn.Port = port
	}
	if database != "" {
		conn.Database = database
	}
	if user != "" {
		conn.User = user
	}
	if password != "" {
		conn.Password = password
	}
	if dsn != "" {
		conn.DSN = dsn
	}
	return conn
}

// IsDryRun returns true if dry-run mode is enabled
func IsDryRun() bool {
	return dryRun
}

// newApprover picks the write approver from --dry-run, --yes and EMPTRACK_CONFIRM
func newApprover(out io.Writer, confirmer security.Confirmer) (security.Approver, error) {
	switch {
	case dryRun:
		return security.NewDryRunApprover(out), nil
	case assumeYes:
		return security.NewAutoApprover(true), nil
	}

	policy := ""
	if settings != nil {
		policy = settings.Confirm
	}
	level, err := security.ParseApprovalLevel(policy)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return security.NewInteractiveApprover(confirmer, out, level, verbosity > 0), nil
}

// openAdapter validates the configuration and connects
func openAdapter(ctx context.Context, out io.Writer, approver security.Approver) (ports.TrackerDatabase, error) {
	conn := GetConnectionConfig()
	if err := conn.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	log.Info().Str("target", conn.SafeString()).Msg("Connecting")
	adapter := sqldb.NewAdapter(conn)
	if approver != nil {
		adapter.SetApprover(approver)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := adapter.Connect(connectCtx); err != nil {
		fmt.Fprintln(out, failureStyle.Render("✗ Could not connect to "+conn.SafeString()))
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	return adapter, nil
}

func runTracker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	prompter := prompt.NewTeaPrompter(cmd.InOrStdin(), out)
	approver, err := newApprover(out, prompter)
	if err != nil {
		return err
	}

	adapter, err := openAdapter(ctx, out, approver)
	if err != nil {
		return err
	}
	defer adapter.Close()

	created, err := adapter.EnsureSchema(ctx)
	switch {
	case errors.Is(err, domain.ErrCancelled):
		log.Warn().Msg("Table creation not approved; continuing with the existing schema")
	case err != nil:
		return fmt.Errorf("schema setup failed: %w", err)
	case len(created) > 0:
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Created tables: %v", created)))
	}

	fmt.Fprintln(out, menu.Banner())

	m := menu.New(services.NewTracker(adapter), prompter, out)
	if err := m.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "Have a nice day")
	log.Info().Msg("Disconnected")
	return nil
}
