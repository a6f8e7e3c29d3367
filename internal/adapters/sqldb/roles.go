package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/security"
)

// ListRoles returns every role with its department, ordered by id
func (a *Adapter) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := a.query(ctx, "list roles", `
		SELECT
			role.id,
			role.title,
			role.salary,
			role.department_id,
			department.name
		FROM role
		JOIN department ON role.department_id = department.id
		ORDER BY role.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var r domain.Role
		if err := rows.Scan(&r.ID, &r.Title, &r.Salary, &r.DepartmentID, &r.Department); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}

	return roles, rows.Err()
}

// AddRole inserts a role into a department
func (a *Adapter) AddRole(ctx context.Context, title string, salary decimal.Decimal, departmentID int64) (int64, error) {
	id, err := a.insertWithApproval(ctx,
		fmt.Sprintf("add role %q", title),
		"role",
		[]string{"title", "salary", "department_id"},
		title, salary, departmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to add role: %w", err)
	}
	return id, nil
}

// DeleteRole deletes a role only if no employee holds it
func (a *Adapter) DeleteRole(ctx context.Context, id int64) error {
	row, err := a.queryRow(ctx, "find role", "SELECT title FROM role WHERE id = ?", id)
	if err != nil {
		return err
	}
	var title string
	if err := row.Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("role %d: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	count, err := a.count(ctx, "count role employees", "SELECT COUNT(*) FROM employee WHERE role_id = ?", id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.DependentsError{Entity: "role", Name: title, Dependents: "employees", Count: count}
	}

	affected, err := a.execWithApproval(ctx, security.Destructive,
		fmt.Sprintf("delete role %q", title), "",
		"DELETE FROM role WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("role %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (a *Adapter) count(ctx context.Context, operation, query string, args ...any) (int, error) {
	row, err := a.queryRow(ctx, operation, query, args...)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to %s: %w", operation, err)
	}
	return n, nil
}
