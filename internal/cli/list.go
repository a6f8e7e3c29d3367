package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enunezf/emptrack/internal/core/services"
	"github.com/enunezf/emptrack/internal/menu"
)

// listCmd groups the non-interactive table views
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print employees, roles, departments, managers or budgets",
	Long: `Print one of the tracker tables without opening the menu.

Examples:
  emptrack list employees
  emptrack list budgets --driver sqlite --database tracker.db`,
}

// lister loads rows through the tracker and renders them as a table
type lister func(ctx context.Context, t *services.Tracker) (string, error)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.AddCommand(
		newListCmd("employees", "Print all employees with role, salary and manager",
			func(ctx context.Context, t *services.Tracker) (string, error) {
				rows, err := t.Employees(ctx)
				return menu.EmployeesTable(rows), err
			}),
		newListCmd("roles", "Print all roles with department and salary",
			func(ctx context.Context, t *services.Tracker) (string, error) {
				rows, err := t.Roles(ctx)
				return menu.RolesTable(rows), err
			}),
		newListCmd("departments", "Print all departments",
			func(ctx context.Context, t *services.Tracker) (string, error) {
				rows, err := t.Departments(ctx)
				return menu.DepartmentsTable(rows), err
			}),
		newListCmd("managers", "Print every employee who manages someone",
			func(ctx context.Context, t *services.Tracker) (string, error) {
				rows, err := t.Managers(ctx)
				return menu.ManagersTable(rows), err
			}),
		newListCmd("budgets", "Print the utilized budget of each department",
			func(ctx context.Context, t *services.Tracker) (string, error) {
				rows, err := t.Budgets(ctx)
				return menu.BudgetsTable(rows), err
			}),
	)
}

func newListCmd(name, short string, list lister) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			adapter, err := openAdapter(cmd.Context(), out, nil)
			if err != nil {
				return err
			}
			defer adapter.Close()

			table, err := list(cmd.Context(), services.NewTracker(adapter))
			if err != nil {
				return fmt.Errorf("list %s: %w", name, err)
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}
