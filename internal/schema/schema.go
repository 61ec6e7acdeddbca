package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgxpool.Conn, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CreateTables creates any missing table. Existing tables are left alone.
func CreateTables(ctx context.Context, exec Execer) error {
	for _, table := range CreateOrder {
		if _, err := exec.Exec(ctx, table.Create); err != nil {
			return fmt.Errorf("create table %s: %w", table.Name, err)
		}
	}
	return nil
}

// DropTables drops every table that exists.
func DropTables(ctx context.Context, exec Execer) error {
	for _, table := range DropOrder {
		if _, err := exec.Exec(ctx, table.Drop); err != nil {
			return fmt.Errorf("drop table %s: %w", table.Name, err)
		}
	}
	return nil
}

// Reset drops then recreates all tables, leaving them empty.
func Reset(ctx context.Context, exec Execer) error {
	if err := DropTables(ctx, exec); err != nil {
		return err
	}
	return CreateTables(ctx, exec)
}
