package sparkify

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	report, err := loadService.Run(ctx, config)
//	if errors.Is(err, sparkify.ErrLoadIncomplete) {
//	    // some files or statements were skipped, see report
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrExecutionFailed indicates SQL execution failed.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrParse indicates an input file is not valid JSON or has a field of the wrong type.
	ErrParse = errors.New("parse failed")

	// ErrMissingField indicates an input record lacks a required field.
	ErrMissingField = errors.New("missing required field")

	// ErrLoadIncomplete indicates a load run completed but skipped work.
	ErrLoadIncomplete = errors.New("load incomplete")
)

// usageErrorPatterns are the message fragments cobra and pflag use for misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrLoadIncomplete):
		return ExitLoadIncomplete
	case errors.Is(err, ErrParse), errors.Is(err, ErrMissingField):
		return ExitParseError
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// Preview shortens s to MaxErrorPreviewLength characters for log output.
func Preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= MaxErrorPreviewLength {
		return s
	}
	return s[:MaxErrorPreviewLength] + "..."
}
