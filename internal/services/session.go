package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// SessionManager opens the pool and the single connection an etl run works on.
//
// SessionManager is thread-safe for concurrent use as long as the injected
// dependencies (connectorFactory, logger) are also thread-safe.
type SessionManager struct {
	connectorFactory sparkify.ConnectorFactory
	logger           sparkify.Logger
	runID            string
}

// NewSessionManager creates a new SessionManager with all dependencies injected.
// An empty runID is replaced by a random UUID.
//
// Panics if any dependency is nil. This is intentional fail-fast behavior
// to prevent cryptic nil pointer dereferences later. Panics indicate
// programmer error (incorrect dependency injection setup).
func NewSessionManager(connectorFactory sparkify.ConnectorFactory, logger sparkify.Logger, runID string) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	return &SessionManager{
		connectorFactory: connectorFactory,
		logger:           logger,
		runID:            runID,
	}
}

// PrepareSession connects to connConfig.Database and acquires one connection.
//
// The caller is responsible for closing the session: defer session.Close()
func (sm *SessionManager) PrepareSession(ctx context.Context, connConfig *sparkify.ConnectionConfig) (*sparkify.Session, error) {
	pool, err := sm.connectToDatabase(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w: %w", sparkify.ErrConnectionFailed, err)
	}

	sm.logger.Verbose("Session %s ready on database '%s'", sm.runID, connConfig.Database)
	return sparkify.NewSession(pool, conn, sm.runID), nil
}

// connectToDatabase tags the connection with the run ID so the run can be
// found in pg_stat_activity.
func (sm *SessionManager) connectToDatabase(ctx context.Context, connConfig *sparkify.ConnectionConfig) (*pgxpool.Pool, error) {
	sm.logger.Verbose("Connecting to database '%s'", connConfig.Database)

	cfg := *connConfig
	cfg.AppName = sessionAppName(cfg.AppName, sm.runID)

	connector, err := sm.connectorFactory(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", cfg.Database, err)
	}
	return pool, nil
}

// sessionAppName appends the first block of runID to appName.
// PostgreSQL truncates application_name at 63 bytes.
func sessionAppName(appName, runID string) string {
	if appName == "" {
		appName = sparkify.ApplicationName
	}
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	name := appName + "/" + short
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

var _ sparkify.SessionPreparer = (*SessionManager)(nil)
