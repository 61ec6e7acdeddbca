package etl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// fakeDB records what a fakeTx tree saw. It does not undo work on rollback.
type fakeDB struct {
	executed []executed

	failExec     func(sql string, args []any) error
	lookup       func(args []any) (songID, artistID string, found bool)
	savepointErr error
	beginErr     error
	commitErr    error

	begins             int
	commits            int
	rollbacks          int
	savepoints         int
	releases           int
	savepointRollbacks int
}

type executed struct {
	sql  string
	args []any
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	db.begins++
	return &fakeTx{db: db}, nil
}

func (db *fakeDB) statementsMatching(fragment string) []executed {
	var out []executed
	for _, e := range db.executed {
		if strings.Contains(e.sql, fragment) {
			out = append(out, e)
		}
	}
	return out
}

type fakeTx struct {
	pgx.Tx
	db    *fakeDB
	depth int
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	if t.db.savepointErr != nil {
		return nil, t.db.savepointErr
	}
	t.db.savepoints++
	return &fakeTx{db: t.db, depth: t.depth + 1}, nil
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.db.failExec != nil {
		if err := t.db.failExec(sql, args); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	t.db.executed = append(t.db.executed, executed{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.db.executed = append(t.db.executed, executed{sql: sql, args: args})
	return fakeRow{db: t.db, args: args}
}

func (t *fakeTx) Commit(context.Context) error {
	if t.depth > 0 {
		t.db.releases++
		return nil
	}
	if t.db.commitErr != nil {
		return t.db.commitErr
	}
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.depth > 0 {
		t.db.savepointRollbacks++
	} else {
		t.db.rollbacks++
	}
	return nil
}

type fakeRow struct {
	db   *fakeDB
	args []any
}

func (r fakeRow) Scan(dest ...any) error {
	if r.db.lookup == nil {
		return pgx.ErrNoRows
	}
	songID, artistID, found := r.db.lookup(r.args)
	if !found {
		return pgx.ErrNoRows
	}
	*dest[0].(*pgtype.Text) = pgtype.Text{String: songID, Valid: true}
	*dest[1].(*pgtype.Text) = pgtype.Text{String: artistID, Valid: true}
	return nil
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) { l.record("VERBOSE", format, args...) }
func (l *recordingLogger) Info(format string, args ...interface{})    { l.record("INFO", format, args...) }
func (l *recordingLogger) Warn(format string, args ...interface{})    { l.record("WARN", format, args...) }
func (l *recordingLogger) Error(format string, args ...interface{})   { l.record("ERROR", format, args...) }

func (l *recordingLogger) with(level string) []string {
	var out []string
	for _, line := range l.lines {
		if strings.HasPrefix(line, level+" ") {
			out = append(out, strings.TrimPrefix(line, level+" "))
		}
	}
	return out
}

var _ sparkify.Logger = (*recordingLogger)(nil)
