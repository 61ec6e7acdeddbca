package etl

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// FileResult counts what one file contributed.
type FileResult struct {
	Rows            int
	StatementErrors int
	Plays           int
	Unresolved      int
}

// FileProcessor loads one file inside tx. A returned error means the file
// could not be processed and tx must be rolled back; statement failures are
// reported through FileResult instead.
type FileProcessor interface {
	Category() sparkify.FileCategory
	Process(ctx context.Context, tx pgx.Tx, path string) (FileResult, error)
}

// Phase pairs a data root with the processor for its files.
type Phase struct {
	Root      string
	Processor FileProcessor
}

// TxBeginner is satisfied by *pgxpool.Conn, *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
