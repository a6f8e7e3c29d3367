package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Test the database connection",
	Long: `Test the connection to the configured database and display server information.

This command verifies that the provided credentials and connection settings
are valid by establishing a connection and querying basic server information.

Examples:
  # Connect using the settings in .env
  emptrack connect

  # Connect to MySQL
  emptrack connect --driver mysql --host localhost --database employees_db --user root --password secret

  # Connect to a local SQLite file
  emptrack connect --driver sqlite --database tracker.db`,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	conn := GetConnectionConfig()

	fmt.Fprintf(out, "Connecting to %s...\n", conn.SafeString())

	adapter, err := openAdapter(cmd.Context(), out, nil)
	if err != nil {
		return err
	}
	defer adapter.Close()

	fmt.Fprintln(out, successStyle.Render("✓ Connection successful!"))

	start := time.Now()
	if err := adapter.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	latency := time.Since(start)

	info, err := adapter.GetServerInfo(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get server info: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Driver:  "), info.Driver)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Server:  "), info.ServerName)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Database:"), info.Database)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Ping:    "), latency.Round(time.Microsecond))
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n%s\n", labelStyle.Render("Version Details:"), formatVersion(info.Version))

	return nil
}

// formatVersion indents each line of the server version string
func formatVersion(version string) string {
	lines := strings.Split(version, "\n")
	var formatted []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			formatted = append(formatted, "  "+line)
		}
	}
	return strings.Join(formatted, "\n")
}
