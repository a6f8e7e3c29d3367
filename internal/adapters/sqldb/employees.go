package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/security"
)

// selectEmployees joins role and department, and self-joins employee to
// resolve the manager's name.
const selectEmployees = `
	SELECT
		employee.id,
		employee.first_name,
		employee.last_name,
		employee.role_id,
		role.title,
		department.name,
		role.salary,
		employee.manager_id,
		manager.first_name,
		manager.last_name
	FROM employee
	JOIN role ON employee.role_id = role.id
	JOIN department ON role.department_id = department.id
	LEFT JOIN employee AS manager ON employee.manager_id = manager.id
`

// ListEmployees returns every employee ordered by id
func (a *Adapter) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return a.listEmployees(ctx, "list employees", selectEmployees+" ORDER BY employee.id ASC")
}

// ListEmployeesByManager returns the direct reports of a manager
func (a *Adapter) ListEmployeesByManager(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	return a.listEmployees(ctx, "list employees by manager",
		selectEmployees+" WHERE employee.manager_id = ? ORDER BY employee.id ASC", managerID)
}

// ListEmployeesByDepartment returns the employees holding a role in a department
func (a *Adapter) ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	return a.listEmployees(ctx, "list employees by department",
		selectEmployees+" WHERE role.department_id = ? ORDER BY employee.id ASC", departmentID)
}

func (a *Adapter) listEmployees(ctx context.Context, operation, query string, args ...any) ([]domain.Employee, error) {
	rows, err := a.query(ctx, operation, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var (
			e            domain.Employee
			managerID    sql.NullInt64
			managerFirst sql.NullString
			managerLast  sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.RoleID, &e.Title, &e.Department,
			&e.Salary, &managerID, &managerFirst, &managerLast); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if managerID.Valid {
			id := managerID.Int64
			e.ManagerID = &id
			e.Manager = managerFirst.String + " " + managerLast.String
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// ListManagers returns the distinct employees referenced as a manager
func (a *Adapter) ListManagers(ctx context.Context) ([]domain.Manager, error) {
	rows, err := a.query(ctx, "list managers", `
		SELECT DISTINCT
			manager.id,
			manager.first_name,
			manager.last_name
		FROM employee
		JOIN employee AS manager ON employee.manager_id = manager.id
		ORDER BY manager.first_name, manager.last_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query managers: %w", err)
	}
	defer rows.Close()

	var managers []domain.Manager
	for rows.Next() {
		var (
			m           domain.Manager
			first, last string
		)
		if err := rows.Scan(&m.ID, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		m.Name = first + " " + last
		managers = append(managers, m)
	}

	return managers, rows.Err()
}

// AddEmployee inserts an employee; a nil managerID is stored as NULL
func (a *Adapter) AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (int64, error) {
	id, err := a.insertWithApproval(ctx,
		fmt.Sprintf("add employee %s %s", firstName, lastName),
		"employee",
		[]string{"first_name", "last_name", "role_id", "manager_id"},
		firstName, lastName, roleID, nullableID(managerID))
	if err != nil {
		return 0, fmt.Errorf("failed to add employee: %w", err)
	}
	return id, nil
}

// DeleteEmployee removes an employee. Direct reports lose their manager
// in the same transaction.
func (a *Adapter) DeleteEmployee(ctx context.Context, id int64) error {
	name, err := a.employeeName(ctx, id)
	if err != nil {
		return err
	}

	var reports int
	row, err := a.queryRow(ctx, "count direct reports", "SELECT COUNT(*) FROM employee WHERE manager_id = ?", id)
	if err != nil {
		return err
	}
	if err := row.Scan(&reports); err != nil {
		return fmt.Errorf("failed to count direct reports: %w", err)
	}

	clearReports := rebind(a.dialect, "UPDATE employee SET manager_id = NULL WHERE manager_id = ?")
	deleteRow := rebind(a.dialect, "DELETE FROM employee WHERE id = ?")

	impact := ""
	if reports > 0 {
		impact = fmt.Sprintf("%d direct report(s) will have no manager", reports)
	}
	if err := a.approve(security.ApprovalRequest{
		Operation:     fmt.Sprintf("delete employee %s", name),
		SQL:           clearReports + ";\n" + deleteRow,
		Args:          []any{id},
		Level:         security.Destructive,
		ImpactSummary: impact,
	}); err != nil {
		return err
	}

	err = a.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, clearReports, id); err != nil {
			return fmt.Errorf("failed to clear manager of direct reports: %w", err)
		}
		res, err := tx.ExecContext(ctx, deleteRow, id)
		if err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug().Int64("id", id).Int("reports_cleared", reports).Msg("Employee deleted")
	return nil
}

// UpdateEmployeeRole assigns a new role to an employee
func (a *Adapter) UpdateEmployeeRole(ctx context.Context, id, roleID int64) error {
	n, err := a.execWithApproval(ctx, security.Modification,
		fmt.Sprintf("update role of employee %d", id), "",
		"UPDATE employee SET role_id = ? WHERE id = ?", roleID, id)
	if err != nil {
		return fmt.Errorf("failed to update employee role: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdateEmployeeManager sets or clears (nil) an employee's manager
func (a *Adapter) UpdateEmployeeManager(ctx context.Context, id int64, managerID *int64) error {
	n, err := a.execWithApproval(ctx, security.Modification,
		fmt.Sprintf("update manager of employee %d", id), "",
		"UPDATE employee SET manager_id = ? WHERE id = ?", nullableID(managerID), id)
	if err != nil {
		return fmt.Errorf("failed to update employee manager: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (a *Adapter) employeeName(ctx context.Context, id int64) (string, error) {
	row, err := a.queryRow(ctx, "find employee", "SELECT first_name, last_name FROM employee WHERE id = ?", id)
	if err != nil {
		return "", err
	}
	var first, last string
	if err := row.Scan(&first, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("failed to find employee: %w", err)
	}
	return first + " " + last, nil
}

// nullableID maps a nil id to SQL NULL
func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
