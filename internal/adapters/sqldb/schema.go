package sqldb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/security"
)

// SchemaDDL renders the CREATE TABLE statements for the connected dialect
func (a *Adapter) SchemaDDL() []string {
	tables := domain.TrackerSchema()
	ddl := make([]string, 0, len(tables))
	for _, t := range tables {
		ddl = append(ddl, t.GenerateSQL(a.dialect))
	}
	return ddl
}

// EnsureSchema creates the tracker tables that are missing, in dependency order
func (a *Adapter) EnsureSchema(ctx context.Context) ([]string, error) {
	var created []string
	for _, t := range domain.TrackerSchema() {
		exists, err := a.tableExists(ctx, t.Name)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		if _, err := a.execWithApproval(ctx, security.Modification,
			fmt.Sprintf("create table %s", t.Name), "",
			t.GenerateSQL(a.dialect)); err != nil {
			return created, fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
		log.Info().Str("table", t.Name).Msg("Created table")
		created = append(created, t.Name)
	}
	return created, nil
}

func (a *Adapter) tableExists(ctx context.Context, name string) (bool, error) {
	var query string
	switch a.dialect {
	case domain.DialectPostgres:
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?"
	case domain.DialectMySQL:
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	case domain.DialectSQLServer:
		query = "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = ?"
	default:
		query = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}

	n, err := a.count(ctx, "check table "+name, query, name)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type seedRole struct {
	title      string
	salary     int64
	department string
}

type seedEmployee struct {
	first, last string
	role        string
	manager     string // full name, empty for none
}

var (
	seedDepartments = []string{"Sales", "Engineering", "Finance", "Legal"}

	seedRoles = []seedRole{
		{"Sales Lead", 100000, "Sales"},
		{"Salesperson", 80000, "Sales"},
		{"Lead Engineer", 150000, "Engineering"},
		{"Software Engineer", 120000, "Engineering"},
		{"Account Manager", 160000, "Finance"},
		{"Accountant", 125000, "Finance"},
		{"Legal Team Lead", 250000, "Legal"},
		{"Lawyer", 190000, "Legal"},
	}

	// managers are listed before their reports
	seedEmployees = []seedEmployee{
		{"John", "Doe", "Sales Lead", ""},
		{"Mike", "Chan", "Salesperson", "John Doe"},
		{"Ashley", "Rodriguez", "Lead Engineer", ""},
		{"Kevin", "Tupik", "Software Engineer", "Ashley Rodriguez"},
		{"Kunal", "Singh", "Account Manager", ""},
		{"Malia", "Brown", "Accountant", "Kunal Singh"},
		{"Sarah", "Lourd", "Legal Team Lead", ""},
		{"Tom", "Allen", "Lawyer", "Sarah Lourd"},
	}
)

// Seed loads the sample departments, roles and employees
func (a *Adapter) Seed(ctx context.Context) error {
	departments := make(map[string]int64, len(seedDepartments))
	for _, name := range seedDepartments {
		id, err := a.AddDepartment(ctx, name)
		if err != nil {
			return fmt.Errorf("seed department %s: %w", name, err)
		}
		departments[name] = id
	}

	roles := make(map[string]int64, len(seedRoles))
	for _, r := range seedRoles {
		id, err := a.AddRole(ctx, r.title, decimal.NewFromInt(r.salary), departments[r.department])
		if err != nil {
			return fmt.Errorf("seed role %s: %w", r.title, err)
		}
		roles[r.title] = id
	}

	employees := make(map[string]int64, len(seedEmployees))
	for _, e := range seedEmployees {
		var managerID *int64
		if e.manager != "" {
			id, ok := employees[e.manager]
			if !ok {
				return fmt.Errorf("seed employee %s %s: unknown manager %s", e.first, e.last, e.manager)
			}
			managerID = &id
		}
		id, err := a.AddEmployee(ctx, e.first, e.last, roles[e.role], managerID)
		if err != nil {
			return fmt.Errorf("seed employee %s %s: %w", e.first, e.last, err)
		}
		employees[e.first+" "+e.last] = id
	}

	log.Info().
		Int("departments", len(departments)).
		Int("roles", len(roles)).
		Int("employees", len(employees)).
		Msg("Sample data loaded")
	return nil
}
