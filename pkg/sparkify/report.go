package sparkify

import "fmt"

// FileFailure records a data file whose transaction was rolled back.
type FileFailure struct {
	Path string
	Err  error
}

// PhaseReport summarises one load phase (catalog or activity).
type PhaseReport struct {
	Category FileCategory
	Root     string

	Found     int
	Processed int
	Failed    []FileFailure

	// StatementErrors counts statements rolled back to their savepoint.
	StatementErrors int

	// Rows counts statements that applied successfully.
	Rows int

	// Plays counts songplays rows inserted, Unresolved those with NULL song/artist.
	Plays      int
	Unresolved int
}

// Incomplete reports whether the phase skipped any file or statement.
func (p PhaseReport) Incomplete() bool {
	return len(p.Failed) > 0 || p.StatementErrors > 0
}

// Summary is the one-line status printed after a phase.
func (p PhaseReport) Summary() string {
	s := fmt.Sprintf("%s: %d/%d files processed, %d failed, %d statement errors",
		p.Category, p.Processed, p.Found, len(p.Failed), p.StatementErrors)
	if p.Category == CategoryActivity {
		s += fmt.Sprintf(", %d plays (%d unresolved)", p.Plays, p.Unresolved)
	}
	return s
}

// LoadReport is the outcome of a full etl run.
type LoadReport struct {
	RunID  string
	Phases []PhaseReport
}

// Incomplete reports whether any phase skipped work.
func (r *LoadReport) Incomplete() bool {
	for _, p := range r.Phases {
		if p.Incomplete() {
			return true
		}
	}
	return false
}

// Err returns ErrLoadIncomplete with totals when the run skipped work, nil otherwise.
func (r *LoadReport) Err() error {
	if !r.Incomplete() {
		return nil
	}
	var files, stmts int
	for _, p := range r.Phases {
		files += len(p.Failed)
		stmts += p.StatementErrors
	}
	return fmt.Errorf("%d failed files, %d statement errors: %w", files, stmts, ErrLoadIncomplete)
}
