// Package services contains the business logic services.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/core/ports"
)

// Tracker normalizes and validates user input before it reaches the store
type Tracker struct {
	store ports.TrackerStore
}

// NewTracker creates a tracker over a store
func NewTracker(store ports.TrackerStore) *Tracker {
	return &Tracker{store: store}
}

// Employees returns every employee
func (t *Tracker) Employees(ctx context.Context) ([]domain.Employee, error) {
	return t.store.ListEmployees(ctx)
}

// EmployeesByManager returns the direct reports of a manager
func (t *Tracker) EmployeesByManager(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	return t.store.ListEmployeesByManager(ctx, managerID)
}

// EmployeesByDepartment returns the employees of a department
func (t *Tracker) EmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	return t.store.ListEmployeesByDepartment(ctx, departmentID)
}

// Managers returns the employees that manage someone
func (t *Tracker) Managers(ctx context.Context) ([]domain.Manager, error) {
	return t.store.ListManagers(ctx)
}

// Roles returns every role
func (t *Tracker) Roles(ctx context.Context) ([]domain.Role, error) {
	return t.store.ListRoles(ctx)
}

// Departments returns every department
func (t *Tracker) Departments(ctx context.Context) ([]domain.Department, error) {
	return t.store.ListDepartments(ctx)
}

// Budgets returns the utilized budget of every department
func (t *Tracker) Budgets(ctx context.Context) ([]domain.DepartmentBudget, error) {
	return t.store.DepartmentBudgets(ctx)
}

// AddEmployee validates and inserts an employee, returning the stored name
func (t *Tracker) AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (string, error) {
	first, err := requiredName("first name", firstName)
	if err != nil {
		return "", err
	}
	last, err := requiredName("last name", lastName)
	if err != nil {
		return "", err
	}

	if _, err := t.store.AddEmployee(ctx, first, last, roleID, managerID); err != nil {
		return "", err
	}
	return first + " " + last, nil
}

// DeleteEmployee removes an employee
func (t *Tracker) DeleteEmployee(ctx context.Context, id int64) error {
	return t.store.DeleteEmployee(ctx, id)
}

// UpdateEmployeeRole assigns a role to an employee
func (t *Tracker) UpdateEmployeeRole(ctx context.Context, id, roleID int64) error {
	return t.store.UpdateEmployeeRole(ctx, id, roleID)
}

// UpdateEmployeeManager sets or clears an employee's manager
func (t *Tracker) UpdateEmployeeManager(ctx context.Context, id int64, managerID *int64) error {
	if managerID != nil {
		if *managerID == id {
			return fmt.Errorf("an employee cannot manage themselves: %w", domain.ErrInvalidInput)
		}

		employees, err := t.store.ListEmployees(ctx)
		if err != nil {
			return err
		}
		if Subordinates(employees, id)[*managerID] {
			return fmt.Errorf("an employee cannot be managed by one of their own reports: %w", domain.ErrInvalidInput)
		}
	}
	return t.store.UpdateEmployeeManager(ctx, id, managerID)
}

// Subordinates returns the ids of everyone under id in the reporting
// chain, direct reports and their reports alike
func Subordinates(employees []domain.Employee, id int64) map[int64]bool {
	reports := make(map[int64][]int64)
	for _, e := range employees {
		if e.ManagerID != nil {
			reports[*e.ManagerID] = append(reports[*e.ManagerID], e.ID)
		}
	}

	seen := make(map[int64]bool)
	queue := []int64{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, r := range reports[current] {
			if r == id || seen[r] {
				continue
			}
			seen[r] = true
			queue = append(queue, r)
		}
	}
	return seen
}

// AddRole validates and inserts a role, returning the stored title
func (t *Tracker) AddRole(ctx context.Context, title, salary string, departmentID int64) (string, error) {
	name, err := requiredName("role title", title)
	if err != nil {
		return "", err
	}

	amount, err := ParseSalary(salary)
	if err != nil {
		return "", err
	}

	if _, err := t.store.AddRole(ctx, name, amount, departmentID); err != nil {
		return "", err
	}
	return name, nil
}

// DeleteRole removes a role nobody holds
func (t *Tracker) DeleteRole(ctx context.Context, id int64) error {
	return t.store.DeleteRole(ctx, id)
}

// AddDepartment validates and inserts a department, returning the stored name
func (t *Tracker) AddDepartment(ctx context.Context, name string) (string, error) {
	if msg := ValidateInput(name, false); msg != "" {
		return "", fmt.Errorf("department name: %s: %w", msg, domain.ErrInvalidInput)
	}
	clean := TitleCase(strings.Join(strings.Fields(name), " "))

	if _, err := t.store.AddDepartment(ctx, clean); err != nil {
		return "", err
	}
	return clean, nil
}

// DeleteDepartment removes a department without roles
func (t *Tracker) DeleteDepartment(ctx context.Context, id int64) error {
	return t.store.DeleteDepartment(ctx, id)
}

// ParseSalary parses a salary that fits the DECIMAL(12,2) column
func ParseSalary(input string) (decimal.Decimal, error) {
	if msg := ValidateSalary(input); msg != "" {
		return decimal.Zero, fmt.Errorf("salary: %s: %w", msg, domain.ErrInvalidInput)
	}
	return decimal.RequireFromString(strings.TrimSpace(input)), nil
}

func requiredName(field, value string) (string, error) {
	if msg := ValidateInput(value, false); msg != "" {
		return "", fmt.Errorf("%s: %s: %w", field, msg, domain.ErrInvalidInput)
	}
	return Capitalize(strings.TrimSpace(value)), nil
}
