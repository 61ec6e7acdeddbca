package etl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vvka-141/sparkify/internal/records"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// statementRunner executes statements of one file, each under its own
// savepoint. Only savepoint bookkeeping failures and cancellation are
// returned as errors.
type statementRunner struct {
	tx     pgx.Tx
	logger sparkify.Logger
	path   string
	result FileResult
}

func newStatementRunner(tx pgx.Tx, logger sparkify.Logger, path string) *statementRunner {
	return &statementRunner{tx: tx, logger: logger, path: path}
}

// exec reports whether the statement was applied.
func (r *statementRunner) exec(ctx context.Context, sql string, args ...any) (bool, error) {
	applied, err := r.guard(ctx, sql, args, func(sp pgx.Tx) error {
		_, err := sp.Exec(ctx, sql, args...)
		return err
	})
	if applied {
		r.result.Rows++
	}
	return applied, err
}

// lookup scans the first row into dest and reports whether one was found.
// A failed query counts as a statement error and as not found.
func (r *statementRunner) lookup(ctx context.Context, sql string, args []any, dest ...any) (bool, error) {
	found := false
	_, err := r.guard(ctx, sql, args, func(sp pgx.Tx) error {
		err := sp.QueryRow(ctx, sql, args...).Scan(dest...)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil
		case err != nil:
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (r *statementRunner) guard(ctx context.Context, sql string, args []any, fn func(pgx.Tx) error) (bool, error) {
	sp, err := r.tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("create savepoint: %w", err)
	}

	if stmtErr := fn(sp); stmtErr != nil {
		if err := sp.Rollback(ctx); err != nil {
			return false, fmt.Errorf("rollback to savepoint after %v: %w", stmtErr, err)
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		r.result.StatementErrors++
		r.logger.Warn("%s: statement failed: %v\n  %s", r.path, stmtErr, sparkify.Preview(sql+" "+describeArgs(args)))
		return false, nil
	}

	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("release savepoint: %w", err)
	}
	return true, nil
}

// describeArgs renders statement arguments for log output.
func describeArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		var s string
		switch v := arg.(type) {
		case pgtype.Numeric:
			s = records.FormatDecimal(v)
		case pgtype.Text:
			s = "NULL"
			if v.Valid {
				s = fmt.Sprintf("%q", v.String)
			}
		case pgtype.Int4:
			s = "NULL"
			if v.Valid {
				s = fmt.Sprint(v.Int32)
			}
		case string:
			s = fmt.Sprintf("%q", v)
		default:
			s = fmt.Sprint(v)
		}
		parts[i] = fmt.Sprintf("$%d=%s", i+1, s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
