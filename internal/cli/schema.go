package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/enunezf/emptrack/internal/adapters/sqldb"
	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/prompt"
)

var (
	// Schema command flags
	outputFile  string
	applySchema bool
	seedData    bool
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or create the tracker tables",
	Long: `Print the CREATE TABLE statements for the department, role and employee
tables in the configured driver's dialect.

With --apply the missing tables are created in the database; with --seed
the sample departments, roles and employees are loaded as well.

Examples:
  # Print PostgreSQL DDL
  emptrack schema

  # Write MySQL DDL to a file
  emptrack schema --driver mysql --output schema.sql

  # Create the tables and load sample data into a SQLite file
  emptrack schema --driver sqlite --database tracker.db --apply --seed`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	schemaCmd.Flags().BoolVar(&applySchema, "apply", false, "Create missing tables in the database")
	schemaCmd.Flags().BoolVar(&seedData, "seed", false, "Load sample data (implies --apply)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !applySchema && !seedData {
		conn := GetConnectionConfig()
		if err := conn.ValidateDriver(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		return writeDDL(out, conn.Dialect(), sqldb.NewAdapter(conn).SchemaDDL())
	}

	approver, err := newApprover(out, prompt.NewTeaPrompter(cmd.InOrStdin(), out))
	if err != nil {
		return err
	}
	adapter, err := openAdapter(cmd.Context(), out, approver)
	if err != nil {
		return err
	}
	defer adapter.Close()

	created, err := adapter.EnsureSchema(cmd.Context())
	if err != nil {
		return schemaError(out, err)
	}
	if len(created) == 0 {
		fmt.Fprintln(out, "All tables already exist.")
	}
	for _, name := range created {
		fmt.Fprintln(out, successStyle.Render("✓ Created table "+name))
	}

	if seedData {
		if err := adapter.Seed(cmd.Context()); err != nil {
			return schemaError(out, err)
		}
		fmt.Fprintln(out, successStyle.Render("✓ Sample data loaded"))
	}

	if outputFile != "" {
		return writeDDL(out, GetConnectionConfig().Dialect(), adapter.SchemaDDL())
	}
	return nil
}

// schemaError reports a refused write as a notice instead of a failure
func schemaError(out io.Writer, err error) error {
	if errors.Is(err, domain.ErrCancelled) {
		if IsDryRun() {
			fmt.Fprintln(out, "Dry run: no changes were made.")
		} else {
			fmt.Fprintln(out, "No changes were made.")
		}
		return nil
	}
	return err
}

// writeDDL writes the statements to --output, or to out when no file is given
func writeDDL(out io.Writer, dialect domain.Dialect, ddl []string) error {
	output := generateDDL(dialect, ddl)

	if outputFile == "" {
		fmt.Fprint(out, output)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintln(out, successStyle.Render("✓ DDL written to "+outputFile))
	return nil
}

func generateDDL(dialect domain.Dialect, ddl []string) string {
	var sb strings.Builder

	sb.WriteString("-- ============================================\n")
	sb.WriteString("-- emptrack schema\n")
	sb.WriteString(fmt.Sprintf("-- Dialect: %s\n", dialect))
	sb.WriteString(fmt.Sprintf("-- Generated: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("-- ============================================\n\n")

	for _, stmt := range ddl {
		sb.WriteString(stmt)
		sb.WriteString(";\n")
		if dialect == domain.DialectSQLServer {
			sb.WriteString("GO\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
