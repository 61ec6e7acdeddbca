package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sparkify/internal/schema"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockApprover struct {
	approved bool
	err      error
	asked    []string
}

func (m *mockApprover) RequestApproval(_ context.Context, dbName string) (bool, error) {
	m.asked = append(m.asked, dbName)
	return m.approved, m.err
}

// mockDatabaseManager records the management calls in order.
type mockDatabaseManager struct {
	existsResult bool
	existsErr    error
	createErr    error
	dropErr      error
	terminateErr error
	calls        []string
}

func (m *mockDatabaseManager) Exists(_ context.Context, _ sparkify.DBConnection, name string) (bool, error) {
	m.calls = append(m.calls, "exists "+name)
	return m.existsResult, m.existsErr
}

func (m *mockDatabaseManager) Create(_ context.Context, _ sparkify.DBConnection, name string) error {
	m.calls = append(m.calls, "create "+name)
	return m.createErr
}

func (m *mockDatabaseManager) Drop(_ context.Context, _ sparkify.DBConnection, name string) error {
	m.calls = append(m.calls, "drop "+name)
	return m.dropErr
}

func (m *mockDatabaseManager) TerminateConnections(_ context.Context, _ sparkify.DBConnection, name string) error {
	m.calls = append(m.calls, "terminate "+name)
	return m.terminateErr
}

type mockExecer struct {
	statements []string
	failOn     string
}

func (m *mockExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if m.failOn != "" && strings.Contains(sql, m.failOn) {
		return pgconn.CommandTag{}, fmt.Errorf("permission denied for schema public")
	}
	m.statements = append(m.statements, sql)
	return pgconn.CommandTag{}, nil
}

var _ schema.Execer = (*mockExecer)(nil)

type mockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *mockLogger) add(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Verbose(format string, args ...interface{}) { m.add(format, args...) }
func (m *mockLogger) Info(format string, args ...interface{})    { m.add(format, args...) }
func (m *mockLogger) Warn(format string, args ...interface{})    { m.add(format, args...) }
func (m *mockLogger) Error(format string, args ...interface{})   { m.add(format, args...) }
