package sparkify_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vvka-141/sparkify/pkg/sparkify"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, sparkify.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), sparkify.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), sparkify.ExitUsageError},
		{"accepts args", errors.New("accepts 0 arg(s), received 1"), sparkify.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), sparkify.ExitUsageError},
		{"general error", errors.New("something went wrong"), sparkify.ExitGeneralError},
		{"invalid config", fmt.Errorf("bad: %w", sparkify.ErrInvalidConfig), sparkify.ExitConfigError},
		{"unsupported auth", sparkify.ErrUnsupportedAuthMethod, sparkify.ExitConfigError},
		{"approval denied", sparkify.ErrApprovalDenied, sparkify.ExitApprovalDenied},
		{"connection failed", sparkify.ErrConnectionFailed, sparkify.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), sparkify.ExitConnectionError},
		{"execution failed", fmt.Errorf("create database: %w", sparkify.ErrExecutionFailed), sparkify.ExitExecutionFailed},
		{"parse", fmt.Errorf("a.json: %w", sparkify.ErrParse), sparkify.ExitParseError},
		{"missing field", fmt.Errorf("a.json: %w", sparkify.ErrMissingField), sparkify.ExitParseError},
		{"load incomplete", fmt.Errorf("2 failed files: %w", sparkify.ErrLoadIncomplete), sparkify.ExitLoadIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sparkify.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_LoadIncompleteWinsOverWrappedParse(t *testing.T) {
	err := errors.Join(fmt.Errorf("x.json: %w", sparkify.ErrParse), sparkify.ErrLoadIncomplete)
	if got := sparkify.ExitCodeForError(err); got != sparkify.ExitLoadIncomplete {
		t.Errorf("got %d, want %d", got, sparkify.ExitLoadIncomplete)
	}
}

func TestPreview(t *testing.T) {
	if got := sparkify.Preview("INSERT INTO users\n\t(user_id)  VALUES ($1)"); got != "INSERT INTO users (user_id) VALUES ($1)" {
		t.Errorf("Preview collapsed whitespace wrong: %q", got)
	}

	long := strings.Repeat("x", sparkify.MaxErrorPreviewLength+50)
	got := sparkify.Preview(long)
	if len(got) != sparkify.MaxErrorPreviewLength+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("Preview did not truncate: len=%d", len(got))
	}
}
