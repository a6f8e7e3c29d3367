// Package ports defines the interfaces (ports) for the hexagonal architecture.
package ports

import (
	"context"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/security"
)

// DatabasePort defines the interface for database lifecycle operations
type DatabasePort interface {
	// Connect establishes a connection to the database
	Connect(ctx context.Context) error

	// Ping verifies the connection is still alive
	Ping(ctx context.Context) error

	// Close closes the database connection
	Close() error

	// GetServerInfo retrieves information about the connected server
	GetServerInfo(ctx context.Context) (*domain.ServerInfo, error)

	// SetApprover sets the approver consulted before every write
	SetApprover(approver security.Approver)
}
