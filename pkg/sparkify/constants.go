package sparkify

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitApprovalDenied  = 11 // User denied the destructive schema reset
	ExitConnectionError = 12 // Failed to connect to database
	ExitExecutionFailed = 13 // DDL or database management statement failed
	ExitParseError      = 14 // Input file could not be parsed
	ExitLoadIncomplete  = 15 // Load finished but some files or statements failed
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultLoadTimeout bounds a whole etl run.
	DefaultLoadTimeout = 30 * time.Minute

	// DefaultSchemaTimeout bounds a create-tables run, approval countdown included.
	DefaultSchemaTimeout = 3 * time.Minute

	// MaxErrorPreviewLength is the maximum number of characters shown
	// when echoing a failed statement or its arguments.
	MaxErrorPreviewLength = 200

	// DefaultManagementDB is the default database to connect to for management operations.
	DefaultManagementDB = "postgres"

	// DefaultDatabase is the analytics database created by create-tables.
	DefaultDatabase = "sparkifydb"

	// DefaultSongDataPath is the root of the song catalog files.
	DefaultSongDataPath = "data/song_data"

	// DefaultLogDataPath is the root of the activity log files.
	DefaultLogDataPath = "data/log_data"

	// DataFileExtension is the only extension the loaders pick up.
	DataFileExtension = ".json"

	// NextSongPage is the page value that marks an activity row as a song play.
	NextSongPage = "NextSong"

	// ApplicationName is reported to PostgreSQL as application_name.
	ApplicationName = "sparkify"
)
