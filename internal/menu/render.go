package menu

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/enunezf/emptrack/internal/core/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#bd93f9")).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")).Italic(true)
	bannerStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff79c6")).
			Bold(true).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#bd93f9")).
			Padding(1, 6)
)

// Banner returns the welcome screen shown before the first menu
func Banner() string {
	return bannerStyle.Render("H R   1 9 8 5") + "\n\nThe Power of the Menu at Your Fingertips!\n"
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// EmployeesTable renders employees with their role, salary and manager
func EmployeesTable(employees []domain.Employee) string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			id(e.ID), e.FirstName, e.LastName, e.Title, e.Department, money(e.Salary), e.Manager,
		})
	}
	return renderTable([]string{"ID", "First Name", "Last Name", "Title", "Department", "Salary", "Manager"}, rows)
}

// RolesTable renders roles with their department and salary
func RolesTable(roles []domain.Role) string {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{id(r.ID), r.Title, r.Department, money(r.Salary)})
	}
	return renderTable([]string{"ID", "Title", "Department", "Salary"}, rows)
}

// DepartmentsTable renders departments
func DepartmentsTable(departments []domain.Department) string {
	rows := make([][]string, 0, len(departments))
	for _, d := range departments {
		rows = append(rows, []string{id(d.ID), d.Name})
	}
	return renderTable([]string{"ID", "Department Name"}, rows)
}

// ManagersTable renders managers
func ManagersTable(managers []domain.Manager) string {
	rows := make([][]string, 0, len(managers))
	for _, m := range managers {
		rows = append(rows, []string{id(m.ID), m.Name})
	}
	return renderTable([]string{"ID", "Manager"}, rows)
}

// BudgetsTable renders the utilized budget per department
func BudgetsTable(budgets []domain.DepartmentBudget) string {
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{id(b.ID), b.Department, strconv.Itoa(b.Headcount), money(b.Total)})
	}
	return renderTable([]string{"ID", "Department", "Employees", "Utilized Budget"}, rows)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
