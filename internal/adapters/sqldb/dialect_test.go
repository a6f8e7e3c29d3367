package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enunezf/emptrack/internal/core/domain"
)

func TestRebind(t *testing.T) {
	query := "UPDATE employee SET role_id = ? WHERE id = ? AND first_name <> '?'"

	tests := []struct {
		dialect domain.Dialect
		want    string
	}{
		{domain.DialectPostgres, "UPDATE employee SET role_id = $1 WHERE id = $2 AND first_name <> '?'"},
		{domain.DialectSQLServer, "UPDATE employee SET role_id = @p1 WHERE id = @p2 AND first_name <> '?'"},
		{domain.DialectMySQL, query},
		{domain.DialectSQLite, query},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			assert.Equal(t, tt.want, rebind(tt.dialect, query))
		})
	}
}

func TestSquash(t *testing.T) {
	assert.Equal(t, "SELECT id FROM role WHERE id = ?", squash("\n\tSELECT id\n\t\tFROM role\n  WHERE id = ?\n"))
}

func TestSchemaDDL_PerDialect(t *testing.T) {
	tests := []struct {
		driver   string
		contains []string
	}{
		{"postgres", []string{`CREATE TABLE "department"`, `"id" SERIAL PRIMARY KEY`, `DECIMAL(12,2) NOT NULL`}},
		{"mysql", []string{"CREATE TABLE `role`", "AUTO_INCREMENT PRIMARY KEY"}},
		{"sqlserver", []string{"CREATE TABLE [employee]", "IDENTITY(1,1) PRIMARY KEY", "[manager_id] INT NULL"}},
		{"sqlite", []string{`INTEGER PRIMARY KEY AUTOINCREMENT`, `REFERENCES "employee" ("id")`}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			config := domain.NewConnectionConfig()
			config.Driver = tt.driver
			ddl := NewAdapter(config).SchemaDDL()
			assert.Len(t, ddl, 3)

			all := ddl[0] + "\n" + ddl[1] + "\n" + ddl[2]
			for _, want := range tt.contains {
				assert.Contains(t, all, want)
			}
		})
	}
}
