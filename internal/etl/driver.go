package etl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// Driver walks a data root and feeds each file to a FileProcessor, one
// transaction per file.
type Driver struct {
	scanner  sparkify.FileScanner
	logger   sparkify.Logger
	progress ProgressReporter
}

func NewDriver(scanner sparkify.FileScanner, logger sparkify.Logger, progress ProgressReporter) *Driver {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if progress == nil {
		panic("progress cannot be nil")
	}
	return &Driver{scanner: scanner, logger: logger, progress: progress}
}

// Run executes phases strictly in order and stops at the first phase error.
// The report includes every phase that started.
func (d *Driver) Run(ctx context.Context, conn TxBeginner, phases ...Phase) ([]sparkify.PhaseReport, error) {
	reports := make([]sparkify.PhaseReport, 0, len(phases))
	for _, phase := range phases {
		report, err := d.RunPhase(ctx, conn, phase)
		reports = append(reports, report)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

// RunPhase loads every file under phase.Root in lexical order. Files that
// fail are rolled back and recorded; the phase continues. An error is
// returned only when the root cannot be scanned, a transaction cannot be
// started, or ctx is done.
func (d *Driver) RunPhase(ctx context.Context, conn TxBeginner, phase Phase) (sparkify.PhaseReport, error) {
	category := phase.Processor.Category()
	report := sparkify.PhaseReport{Category: category, Root: phase.Root}

	scan, err := d.scanner.ScanDirectory(phase.Root)
	if err != nil {
		return report, fmt.Errorf("%s phase: %w", category, err)
	}

	total := len(scan.Files)
	report.Found = total
	d.progress.PhaseStarted(category, phase.Root, total)

	var totals FileResult
	for i, file := range scan.Files {
		if err := ctx.Err(); err != nil {
			return d.finish(report, totals), err
		}

		path := file.AbsPath
		if path == "" {
			path = filepath.Join(scan.Root, filepath.FromSlash(file.Path))
		}

		result, err := d.processFile(ctx, conn, phase.Processor, path)
		totals.StatementErrors += result.StatementErrors
		switch {
		case err == nil:
			report.Processed++
			totals.Rows += result.Rows
			totals.Plays += result.Plays
			totals.Unresolved += result.Unresolved
		case ctx.Err() != nil:
			return d.finish(report, totals), ctx.Err()
		case isBeginFailure(err):
			return d.finish(report, totals), err
		default:
			d.logger.Error("%s: %v", file.Path, err)
			report.Failed = append(report.Failed, sparkify.FileFailure{Path: file.Path, Err: err})
		}

		d.progress.FileDone(i+1, total, file.Path)
	}

	report = d.finish(report, totals)
	d.logger.Info("%s", report.Summary())
	return report, nil
}

func (d *Driver) finish(report sparkify.PhaseReport, totals FileResult) sparkify.PhaseReport {
	report.Rows = totals.Rows
	report.StatementErrors = totals.StatementErrors
	report.Plays = totals.Plays
	report.Unresolved = totals.Unresolved
	return report
}

type beginError struct{ err error }

func (e *beginError) Error() string { return e.err.Error() }
func (e *beginError) Unwrap() error { return e.err }

func isBeginFailure(err error) bool {
	_, ok := err.(*beginError)
	return ok
}

// processFile commits the file's work or rolls all of it back.
func (d *Driver) processFile(ctx context.Context, conn TxBeginner, processor FileProcessor, path string) (FileResult, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return FileResult{}, &beginError{fmt.Errorf("begin transaction for %s: %w: %w", path, sparkify.ErrConnectionFailed, err)}
	}

	result, err := processor.Process(ctx, tx, path)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			d.logger.Verbose("rollback %s: %v", path, rbErr)
		}
		return result, err
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit %s: %w", path, err)
	}

	d.logger.Verbose("%s: %d rows, %d statement errors", path, result.Rows, result.StatementErrors)
	return result, nil
}
