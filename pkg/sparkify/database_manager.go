package sparkify

import (
	"context"
)

// DatabaseManager defines the interface for database management operations.
// Implementations are NOT safe for concurrent use. Create separate instances
// for concurrent operations.
type DatabaseManager interface {
	// Exists checks if a database exists.
	Exists(ctx context.Context, conn DBConnection, dbName string) (bool, error)

	// Create creates a new UTF8 database from template0.
	Create(ctx context.Context, conn DBConnection, dbName string) error

	// Drop drops the database if it exists.
	Drop(ctx context.Context, conn DBConnection, dbName string) error

	// TerminateConnections terminates all other sessions connected to the database.
	TerminateConnections(ctx context.Context, conn DBConnection, dbName string) error
}
