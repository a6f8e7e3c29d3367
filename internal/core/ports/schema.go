package ports

import (
	"context"
)

// SchemaPort defines the interface for bootstrapping the tracker tables
type SchemaPort interface {
	// SchemaDDL renders the CREATE TABLE statements for the connected dialect
	SchemaDDL() []string

	// EnsureSchema creates any tracker table that does not exist yet and
	// returns the names of the tables it created
	EnsureSchema(ctx context.Context) ([]string, error)

	// Seed loads sample departments, roles and employees
	Seed(ctx context.Context) error
}
