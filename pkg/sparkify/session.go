package sparkify

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPreparer abstracts session acquisition for testability.
type SessionPreparer interface {
	PrepareSession(ctx context.Context, connConfig *ConnectionConfig) (*Session, error)
}

// Session owns the database resources of one etl run: the pool and the
// single connection every load statement runs on.
//
// Thread-Safety: NOT safe for concurrent use. The load pipeline is
// single-writer by design and uses the connection exclusively.
//
// Lifecycle:
//  1. Created by SessionManager.PrepareSession()
//  2. Passed explicitly to the load driver
//  3. Cleaned up via Close() (idempotent), on success and failure paths alike
//
// Example usage:
//
//	session, err := sessionManager.PrepareSession(ctx, connConfig)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
type Session struct {
	pool  *pgxpool.Pool
	conn  *pgxpool.Conn
	runID string
}

// NewSession creates a new Session instance.
//
// Panics if pool or conn is nil (programmer error - SessionManager
// should never create a Session with nil resources).
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn, runID string) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}

	return &Session{
		pool:  pool,
		conn:  conn,
		runID: runID,
	}
}

// Pool returns the connection pool for the session.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// Conn returns the acquired connection. Valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// RunID identifies the run in logs and in pg_stat_activity.application_name.
func (s *Session) RunID() string {
	return s.runID
}

// Close releases the acquired connection, then closes the pool.
// This method is idempotent and safe to call multiple times.
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
