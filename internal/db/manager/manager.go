package manager

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

const (
	queryDatabaseExists       = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	queryTerminateConnections = `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`
)

// Manager implements sparkify.DatabaseManager. It holds no state.
type Manager struct{}

func New() sparkify.DatabaseManager {
	return &Manager{}
}

func (m *Manager) Exists(ctx context.Context, conn sparkify.DBConnection, dbName string) (bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, queryDatabaseExists, dbName).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return exists, nil
}

// Create runs CREATE DATABASE with UTF8 encoding from template0.
func (m *Manager) Create(ctx context.Context, conn sparkify.DBConnection, dbName string) error {
	query := fmt.Sprintf("CREATE DATABASE %s WITH ENCODING 'UTF8' TEMPLATE template0", pgx.Identifier{dbName}.Sanitize())
	return execDedicated(ctx, conn, query, "create", dbName)
}

// Drop runs DROP DATABASE IF EXISTS, so a missing database is not an error.
func (m *Manager) Drop(ctx context.Context, conn sparkify.DBConnection, dbName string) error {
	query := fmt.Sprintf("DROP DATABASE IF EXISTS %s", pgx.Identifier{dbName}.Sanitize())
	return execDedicated(ctx, conn, query, "drop", dbName)
}

func (m *Manager) TerminateConnections(ctx context.Context, conn sparkify.DBConnection, dbName string) error {
	if _, err := conn.Exec(ctx, queryTerminateConnections, dbName); err != nil {
		return fmt.Errorf("failed to terminate connections to database %q: %w", dbName, err)
	}
	return nil
}

func execDedicated(ctx context.Context, conn sparkify.DBConnection, query, verb, dbName string) error {
	pooled, err := conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer pooled.Release()

	if _, err := pooled.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to %s database %q: %w: %w", verb, dbName, sparkify.ErrExecutionFailed, err)
	}
	return nil
}

var _ sparkify.DatabaseManager = (*Manager)(nil)
