package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgreSQLErrorClassifier_IsTransient(t *testing.T) {
	classifier := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name        string
		err         error
		isTransient bool
	}{
		{"nil", nil, false},
		{"connection_failure 08006", &pgconn.PgError{Code: "08006"}, true},
		{"too_many_connections 53300", &pgconn.PgError{Code: "53300"}, true},
		{"cannot_connect_now 57P03", &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}, true},
		{"serialization_failure 40001", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock 40P01", &pgconn.PgError{Code: "40P01"}, true},
		{"unique_violation 23505", &pgconn.PgError{Code: "23505", Message: "duplicate key value"}, false},
		{"not_null_violation 23502", &pgconn.PgError{Code: "23502"}, false},
		{"invalid_catalog_name 3D000", &pgconn.PgError{Code: "3D000", Message: "database \"sparkifydb\" does not exist"}, false},
		{"auth failed 28P01", &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}, false},
		{"wrapped pg error", fmt.Errorf("ping: %w", &pgconn.PgError{Code: "08001"}), true},
		{
			"econnrefused",
			&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			true,
		},
		{
			"temporary dns",
			&net.DNSError{Err: "server misbehaving", Name: "db", IsTemporary: true},
			true,
		},
		{
			"permanent dns",
			&net.DNSError{Err: "no such host", Name: "db", IsNotFound: true},
			false,
		},
		{"message only", errors.New("read: connection reset by peer"), true},
		{"unrelated", errors.New("syntax error at or near"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.isTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.isTransient)
			}
		})
	}
}
