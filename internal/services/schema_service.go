package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/sparkify/internal/db"
	"github.com/vvka-141/sparkify/internal/schema"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

type managementDBConnFunc func(ctx context.Context, connConfig *sparkify.ConnectionConfig, dbName string) (sparkify.DBConnection, func(), error)

type targetDBConnFunc func(ctx context.Context, connConfig *sparkify.ConnectionConfig) (schema.Execer, func(), error)

// SchemaService recreates the analytics database and its tables.
// Thread-Safety: NOT safe for concurrent CreateTables() calls on the same instance.
type SchemaService struct {
	connectorFactory sparkify.ConnectorFactory
	approver         sparkify.Approver
	logger           sparkify.Logger
	dbManager        sparkify.DatabaseManager
	mgmtConnector    managementDBConnFunc
	targetConnector  targetDBConnFunc
}

// NewSchemaService creates a SchemaService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at startup. Runtime conditions (bad configuration, unreachable
// server, denied approval) are returned as errors.
func NewSchemaService(
	connectorFactory sparkify.ConnectorFactory,
	approver sparkify.Approver,
	logger sparkify.Logger,
	dbManager sparkify.DatabaseManager,
) *SchemaService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if dbManager == nil {
		panic("dbManager cannot be nil")
	}

	svc := &SchemaService{
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
		dbManager:        dbManager,
	}
	svc.mgmtConnector = svc.defaultMgmtConnector
	svc.targetConnector = svc.defaultTargetConnector
	return svc
}

// connect opens a pool on dbName using connConfig's credentials.
func (s *SchemaService) connect(ctx context.Context, connConfig *sparkify.ConnectionConfig, dbName string) (sparkify.DBConnection, func(), error) {
	cfg := *connConfig
	cfg.Database = dbName

	connector, err := s.connectorFactory(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database %q: %w", dbName, err)
	}
	return db.NewPoolAdapter(pool), pool.Close, nil
}

func (s *SchemaService) defaultMgmtConnector(ctx context.Context, connConfig *sparkify.ConnectionConfig, dbName string) (sparkify.DBConnection, func(), error) {
	return s.connect(ctx, connConfig, dbName)
}

func (s *SchemaService) defaultTargetConnector(ctx context.Context, connConfig *sparkify.ConnectionConfig) (schema.Execer, func(), error) {
	conn, cleanup, err := s.connect(ctx, connConfig, connConfig.Database)
	if err != nil {
		return nil, nil, err
	}
	return conn, cleanup, nil
}

// CreateTables drops and recreates the target database, then creates the
// five tables in it. Every failing step is returned; a run that returns nil
// left an empty, fully created schema.
func (s *SchemaService) CreateTables(ctx context.Context, config sparkify.SchemaConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := s.recreateDatabase(ctx, config); err != nil {
		return err
	}

	s.logger.Verbose("Connecting to database '%s'", config.Connection.Database)
	exec, cleanup, err := s.targetConnector(ctx, &config.Connection)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := schema.Reset(ctx, exec); err != nil {
		return fmt.Errorf("%w: %w", sparkify.ErrExecutionFailed, err)
	}

	s.logger.Info("✓ Created tables %s in '%s'", tableList(), config.Connection.Database)
	return nil
}

// recreateDatabase runs on the maintenance database: approval when the
// target exists, then terminate, drop, create.
func (s *SchemaService) recreateDatabase(ctx context.Context, config sparkify.SchemaConfig) error {
	target := config.Connection.Database
	s.logger.Verbose("Connecting to management database '%s'", config.MaintenanceDatabase)

	dbConn, cleanup, err := s.mgmtConnector(ctx, &config.Connection, config.MaintenanceDatabase)
	if err != nil {
		return err
	}
	defer cleanup()

	exists, err := s.dbManager.Exists(ctx, dbConn, target)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		s.logger.Verbose("Database '%s' exists. Requesting approval to drop it.", target)
		approved, err := s.approver.RequestApproval(ctx, target)
		if err != nil {
			return fmt.Errorf("approval request failed: %w", err)
		}
		if !approved {
			return sparkify.ErrApprovalDenied
		}

		s.logger.Verbose("Terminating all connections to database '%s'", target)
		if err := s.dbManager.TerminateConnections(ctx, dbConn, target); err != nil {
			return fmt.Errorf("failed to terminate connections: %w", err)
		}

		s.logger.Verbose("Dropping database '%s'", target)
		if err := s.dbManager.Drop(ctx, dbConn, target); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
	}

	s.logger.Verbose("Creating database '%s'", target)
	if err := s.dbManager.Create(ctx, dbConn, target); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	s.logger.Info("✓ Database '%s' created", target)
	return nil
}

func tableList() string {
	names := make([]string, len(schema.CreateOrder))
	for i, table := range schema.CreateOrder {
		names[i] = table.Name
	}
	return strings.Join(names, ", ")
}
