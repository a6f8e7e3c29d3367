package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/security"
)

// ListDepartments returns every department ordered by name
func (a *Adapter) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := a.query(ctx, "list departments", `
		SELECT
			department.id,
			department.name
		FROM department
		ORDER BY department.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// AddDepartment inserts a department
func (a *Adapter) AddDepartment(ctx context.Context, name string) (int64, error) {
	id, err := a.insertWithApproval(ctx,
		fmt.Sprintf("add department %q", name),
		"department",
		[]string{"name"},
		name)
	if err != nil {
		return 0, fmt.Errorf("failed to add department: %w", err)
	}
	return id, nil
}

// DeleteDepartment deletes a department only if no role belongs to it
func (a *Adapter) DeleteDepartment(ctx context.Context, id int64) error {
	row, err := a.queryRow(ctx, "find department", "SELECT name FROM department WHERE id = ?", id)
	if err != nil {
		return err
	}
	var name string
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to find department: %w", err)
	}

	count, err := a.count(ctx, "count department roles", "SELECT COUNT(*) FROM role WHERE department_id = ?", id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.DependentsError{Entity: "department", Name: name, Dependents: "roles", Count: count}
	}

	affected, err := a.execWithApproval(ctx, security.Destructive,
		fmt.Sprintf("delete department %q", name), "",
		"DELETE FROM department WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DepartmentBudgets returns headcount and total salary per department.
// Roles without employees add nothing to the total.
func (a *Adapter) DepartmentBudgets(ctx context.Context) ([]domain.DepartmentBudget, error) {
	rows, err := a.query(ctx, "department budgets", `
		SELECT
			department.id,
			department.name,
			COUNT(employee.id),
			COALESCE(SUM(CASE WHEN employee.id IS NULL THEN 0 ELSE role.salary END), 0)
		FROM department
		LEFT JOIN role ON role.department_id = department.id
		LEFT JOIN employee ON employee.role_id = role.id
		GROUP BY department.id, department.name
		ORDER BY department.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query department budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.DepartmentBudget
	for rows.Next() {
		var b domain.DepartmentBudget
		if err := rows.Scan(&b.ID, &b.Department, &b.Headcount, &b.Total); err != nil {
			return nil, fmt.Errorf("failed to scan department budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}
