// Package manager drops and recreates the analytics database.
//
// Statements run on the maintenance database (normally "postgres") because
// PostgreSQL refuses CREATE/DROP DATABASE inside a transaction and on the
// database being dropped. Identifiers are quoted with pgx.Identifier.
//
//	mgr := manager.New()
//	_ = mgr.TerminateConnections(ctx, pool, "sparkifydb")
//	_ = mgr.Drop(ctx, pool, "sparkifydb")
//	_ = mgr.Create(ctx, pool, "sparkifydb")
package manager
