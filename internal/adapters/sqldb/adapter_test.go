package sqldb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/security"
)

// testAdapter opens a fresh SQLite database with the tracker tables.
func testAdapter(t *testing.T) *Adapter {
	t.Helper()

	config := domain.NewConnectionConfig()
	config.Driver = "sqlite"
	config.Database = filepath.Join(t.TempDir(), "tracker.db")

	a := NewAdapter(config)
	require.NoError(t, a.Connect(context.Background()))
	t.Cleanup(func() { _ = a.Close() })

	created, err := a.EnsureSchema(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"department", "role", "employee"}, created)

	return a
}

// seededAdapter is testAdapter plus the sample data.
func seededAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := testAdapter(t)
	require.NoError(t, a.Seed(context.Background()))
	return a
}

func findEmployee(t *testing.T, employees []domain.Employee, fullName string) domain.Employee {
	t.Helper()
	for _, e := range employees {
		if e.FullName() == fullName {
			return e
		}
	}
	t.Fatalf("employee %q not found", fullName)
	return domain.Employee{}
}

func findRole(t *testing.T, roles []domain.Role, title string) domain.Role {
	t.Helper()
	for _, r := range roles {
		if r.Title == title {
			return r
		}
	}
	t.Fatalf("role %q not found", title)
	return domain.Role{}
}

func findDepartment(t *testing.T, departments []domain.Department, name string) domain.Department {
	t.Helper()
	for _, d := range departments {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("department %q not found", name)
	return domain.Department{}
}

func TestConnect_InvalidConfig(t *testing.T) {
	a := NewAdapter(&domain.ConnectionConfig{Driver: "oracle"})
	err := a.Connect(context.Background())
	assert.Error(t, err)
}

func TestNotConnected(t *testing.T) {
	a := NewAdapter(domain.NewConnectionConfig())
	ctx := context.Background()

	assert.Error(t, a.Ping(ctx))
	_, err := a.ListEmployees(ctx)
	assert.Error(t, err)
	_, err = a.GetServerInfo(ctx)
	assert.Error(t, err)
	assert.NoError(t, a.Close())
}

func TestGetServerInfo_SQLite(t *testing.T) {
	a := testAdapter(t)

	info, err := a.GetServerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", info.Driver)
	assert.Contains(t, info.Version, "SQLite")
	assert.Equal(t, "main", info.Database)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	a := testAdapter(t)

	created, err := a.EnsureSchema(context.Background())
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestListEmployees_ManagerSelfJoin(t *testing.T) {
	a := seededAdapter(t)

	employees, err := a.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 8)

	for i := 1; i < len(employees); i++ {
		assert.Less(t, employees[i-1].ID, employees[i].ID, "employees are ordered by id")
	}

	john := findEmployee(t, employees, "John Doe")
	assert.Nil(t, john.ManagerID)
	assert.Empty(t, john.Manager)
	assert.Equal(t, "Sales Lead", john.Title)
	assert.Equal(t, "Sales", john.Department)
	assert.True(t, john.Salary.Equal(decimal.NewFromInt(100000)))

	mike := findEmployee(t, employees, "Mike Chan")
	require.NotNil(t, mike.ManagerID)
	assert.Equal(t, john.ID, *mike.ManagerID)
	assert.Equal(t, "John Doe", mike.Manager)
}

func TestListManagers_Distinct(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	employees, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	john := findEmployee(t, employees, "John Doe")
	roles, err := a.ListRoles(ctx)
	require.NoError(t, err)

	// a second report for John must not duplicate him
	_, err = a.AddEmployee(ctx, "Ann", "Lee", findRole(t, roles, "Salesperson").ID, &john.ID)
	require.NoError(t, err)

	managers, err := a.ListManagers(ctx)
	require.NoError(t, err)

	var names []string
	for _, m := range managers {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Ashley Rodriguez", "John Doe", "Kunal Singh", "Sarah Lourd"}, names)
}

func TestListEmployeesByManagerAndDepartment(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	employees, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	ashley := findEmployee(t, employees, "Ashley Rodriguez")

	reports, err := a.ListEmployeesByManager(ctx, ashley.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Kevin Tupik", reports[0].FullName())

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)
	legal := findDepartment(t, departments, "Legal")

	staff, err := a.ListEmployeesByDepartment(ctx, legal.ID)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	for _, e := range staff {
		assert.Equal(t, "Legal", e.Department)
	}
}

func TestAddEmployee_NullManager(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	roles, err := a.ListRoles(ctx)
	require.NoError(t, err)

	id, err := a.AddEmployee(ctx, "Grace", "Hopper", findRole(t, roles, "Lead Engineer").ID, nil)
	require.NoError(t, err)
	assert.NotZero(t, id)

	employees, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	grace := findEmployee(t, employees, "Grace Hopper")
	assert.Equal(t, id, grace.ID)
	assert.Nil(t, grace.ManagerID)
}

func TestDeleteEmployee_ClearsReports(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	employees, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	john := findEmployee(t, employees, "John Doe")

	require.NoError(t, a.DeleteEmployee(ctx, john.ID))

	employees, err = a.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 7)
	mike := findEmployee(t, employees, "Mike Chan")
	assert.Nil(t, mike.ManagerID)
	assert.Empty(t, mike.Manager)
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	a := seededAdapter(t)

	err := a.DeleteEmployee(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEmployeeRoleAndManager(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	employees, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	roles, err := a.ListRoles(ctx)
	require.NoError(t, err)

	kevin := findEmployee(t, employees, "Kevin Tupik")
	sarah := findEmployee(t, employees, "Sarah Lourd")
	lawyer := findRole(t, roles, "Lawyer")

	require.NoError(t, a.UpdateEmployeeRole(ctx, kevin.ID, lawyer.ID))
	require.NoError(t, a.UpdateEmployeeManager(ctx, kevin.ID, &sarah.ID))

	employees, err = a.ListEmployees(ctx)
	require.NoError(t, err)
	kevin = findEmployee(t, employees, "Kevin Tupik")
	assert.Equal(t, "Lawyer", kevin.Title)
	assert.Equal(t, "Legal", kevin.Department)
	assert.Equal(t, "Sarah Lourd", kevin.Manager)

	require.NoError(t, a.UpdateEmployeeManager(ctx, kevin.ID, nil))
	employees, err = a.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Nil(t, findEmployee(t, employees, "Kevin Tupik").ManagerID)

	assert.ErrorIs(t, a.UpdateEmployeeRole(ctx, 9999, lawyer.ID), domain.ErrNotFound)
	assert.ErrorIs(t, a.UpdateEmployeeManager(ctx, 9999, nil), domain.ErrNotFound)
}

func TestDeleteRole_Guarded(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	roles, err := a.ListRoles(ctx)
	require.NoError(t, err)
	lawyer := findRole(t, roles, "Lawyer")

	err = a.DeleteRole(ctx, lawyer.ID)
	require.ErrorIs(t, err, domain.ErrHasDependents)
	var depErr *domain.DependentsError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "Lawyer", depErr.Name)
	assert.Equal(t, 1, depErr.Count)

	roles, err = a.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 8, "nothing was deleted")

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)
	id, err := a.AddRole(ctx, "Paralegal", decimal.NewFromInt(60000), findDepartment(t, departments, "Legal").ID)
	require.NoError(t, err)

	require.NoError(t, a.DeleteRole(ctx, id))
	roles, err = a.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 8)

	assert.ErrorIs(t, a.DeleteRole(ctx, id), domain.ErrNotFound)
}

func TestDeleteDepartment_Guarded(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)

	err = a.DeleteDepartment(ctx, findDepartment(t, departments, "Sales").ID)
	require.ErrorIs(t, err, domain.ErrHasDependents)
	assert.Contains(t, err.Error(), "2 roles")

	id, err := a.AddDepartment(ctx, "Marketing")
	require.NoError(t, err)
	require.NoError(t, a.DeleteDepartment(ctx, id))

	departments, err = a.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 4)
}

func TestListDepartments_OrderedByName(t *testing.T) {
	a := seededAdapter(t)

	departments, err := a.ListDepartments(context.Background())
	require.NoError(t, err)

	var names []string
	for _, d := range departments {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Engineering", "Finance", "Legal", "Sales"}, names)
}

func TestDepartmentBudgets(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	_, err := a.AddDepartment(ctx, "Research")
	require.NoError(t, err)

	budgets, err := a.DepartmentBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 5)

	byName := make(map[string]domain.DepartmentBudget)
	for _, b := range budgets {
		byName[b.Department] = b
	}

	assert.Equal(t, 2, byName["Engineering"].Headcount)
	assert.True(t, byName["Engineering"].Total.Equal(decimal.NewFromInt(270000)), byName["Engineering"].Total.String())
	assert.Equal(t, 0, byName["Research"].Headcount)
	assert.True(t, byName["Research"].Total.IsZero())
}

func TestDepartmentBudgets_IgnoresVacantRoles(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)
	_, err = a.AddRole(ctx, "Intern", decimal.NewFromInt(30000), findDepartment(t, departments, "Legal").ID)
	require.NoError(t, err)

	budgets, err := a.DepartmentBudgets(ctx)
	require.NoError(t, err)
	for _, b := range budgets {
		if b.Department == "Legal" {
			assert.True(t, b.Total.Equal(decimal.NewFromInt(440000)), b.Total.String())
		}
	}
}

func TestWrites_DeclinedApproval(t *testing.T) {
	a := seededAdapter(t)
	ctx := context.Background()
	a.SetApprover(security.NewAutoApprover(false))

	_, err := a.AddDepartment(ctx, "Marketing")
	assert.ErrorIs(t, err, domain.ErrCancelled)

	employees, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	err = a.DeleteEmployee(ctx, employees[0].ID)
	assert.ErrorIs(t, err, domain.ErrCancelled)

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 4)

	employees, err = a.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 8)
}

// approverFunc lets a test act while the write waits for approval
type approverFunc func(security.ApprovalRequest) (bool, error)

func (f approverFunc) RequestApproval(req security.ApprovalRequest) (bool, error) { return f(req) }

func TestDelete_RowGoneBeforeExecution(t *testing.T) {
	a := testAdapter(t)
	ctx := context.Background()

	deptID, err := a.AddDepartment(ctx, "Marketing")
	require.NoError(t, err)
	roleID, err := a.AddRole(ctx, "Copywriter", decimal.NewFromInt(50000), deptID)
	require.NoError(t, err)

	// another session removes the row between the lookup and the DELETE
	a.SetApprover(approverFunc(func(req security.ApprovalRequest) (bool, error) {
		_, err := a.db.ExecContext(ctx, req.SQL, req.Args...)
		return true, err
	}))

	assert.ErrorIs(t, a.DeleteRole(ctx, roleID), domain.ErrNotFound)
	assert.ErrorIs(t, a.DeleteDepartment(ctx, deptID), domain.ErrNotFound)

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Empty(t, departments)
}

func TestAddDepartment_DuplicateName(t *testing.T) {
	a := seededAdapter(t)

	_, err := a.AddDepartment(context.Background(), "Sales")
	assert.Error(t, err)
}
