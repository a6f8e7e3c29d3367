package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/enunezf/emptrack/internal/core/domain"
)

// EmployeeStore defines the employee queries
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	ListEmployeesByManager(ctx context.Context, managerID int64) ([]domain.Employee, error)
	ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error)
	ListManagers(ctx context.Context) ([]domain.Manager, error)
	AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (int64, error)
	DeleteEmployee(ctx context.Context, id int64) error
	UpdateEmployeeRole(ctx context.Context, id, roleID int64) error
	UpdateEmployeeManager(ctx context.Context, id int64, managerID *int64) error
}

// RoleStore defines the role queries
type RoleStore interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	AddRole(ctx context.Context, title string, salary decimal.Decimal, departmentID int64) (int64, error)
	DeleteRole(ctx context.Context, id int64) error
}

// DepartmentStore defines the department queries
type DepartmentStore interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	AddDepartment(ctx context.Context, name string) (int64, error)
	DeleteDepartment(ctx context.Context, id int64) error
	DepartmentBudgets(ctx context.Context) ([]domain.DepartmentBudget, error)
}

// TrackerStore is the full query layer used by the tracker service
type TrackerStore interface {
	EmployeeStore
	RoleStore
	DepartmentStore
}

// TrackerDatabase is a connected tracker backend: lifecycle, schema and queries
type TrackerDatabase interface {
	DatabasePort
	SchemaPort
	TrackerStore
}
