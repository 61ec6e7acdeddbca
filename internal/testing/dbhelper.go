// Package testing holds helpers shared by integration tests.
package testing

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sparkify/internal/db"
	"github.com/vvka-141/sparkify/internal/db/manager"
	"github.com/vvka-141/sparkify/internal/schema"
	"github.com/vvka-141/sparkify/internal/testinfra"
)

// TestConnEnvVar overrides the container with an existing server.
const TestConnEnvVar = "SPARKIFY_TEST_CONN"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := testinfra.StartSimplePostgres(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns a connection string to a maintenance database.
// Priority: $SPARKIFY_TEST_CONN > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnvVar, err)
	}
	return connString
}

func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// UniqueDBName returns a database name that is safe to create concurrently.
func UniqueDBName(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// CreateTestDB creates dbName and registers its removal with t.Cleanup.
func CreateTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}
	defer pool.Close()

	if err := manager.New().Create(ctx, db.NewPoolAdapter(pool), dbName); err != nil {
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	t.Cleanup(func() { CleanupTestDB(t, connString, dbName) })
}

// CleanupTestDB terminates sessions on dbName and drops it. Failures are logged.
func CleanupTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer pool.Close()

	conn := db.NewPoolAdapter(pool)
	mgr := manager.New()
	if err := mgr.TerminateConnections(ctx, conn, dbName); err != nil {
		t.Logf("Warning: %v", err)
	}
	if err := mgr.Drop(ctx, conn, dbName); err != nil {
		t.Logf("Warning: %v", err)
	}
}

// GetTestPool opens a pool on dbName that closes when the test completes.
func GetTestPool(t *testing.T, connString, dbName string) *pgxpool.Pool {
	t.Helper()

	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	config.Database = dbName

	pool, err := pgxpool.New(context.Background(), db.BuildConnectionString(config))
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// ApplySchema creates the five tables on pool.
func ApplySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if err := schema.Reset(context.Background(), pool); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
}

// NewSchemaDB creates a fresh database with the schema applied and returns
// a pool on it. Skips when no server is available.
func NewSchemaDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := RequireDatabase(t)
	dbName := UniqueDBName("sparkify_test")
	CreateTestDB(t, connString, dbName)

	pool := GetTestPool(t, connString, dbName)
	ApplySchema(t, pool)
	return pool
}

// CountRows returns SELECT count(*) for table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	query := "SELECT count(*) FROM " + pgx.Identifier{table}.Sanitize()
	if err := pool.QueryRow(context.Background(), query).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
