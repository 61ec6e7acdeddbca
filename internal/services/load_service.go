package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/sparkify/internal/etl"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// PhaseRunner is implemented by *etl.Driver.
type PhaseRunner interface {
	Run(ctx context.Context, conn etl.TxBeginner, phases ...etl.Phase) ([]sparkify.PhaseReport, error)
}

// LoadService runs the two load phases on one session: the catalog phase,
// then the activity phase. The order is fixed because songplays resolution
// reads the songs and artists tables.
type LoadService struct {
	sessions sparkify.SessionPreparer
	runner   PhaseRunner
	catalog  etl.FileProcessor
	activity etl.FileProcessor
	logger   sparkify.Logger
}

// NewLoadService panics on nil dependencies.
func NewLoadService(
	sessions sparkify.SessionPreparer,
	runner PhaseRunner,
	catalog etl.FileProcessor,
	activity etl.FileProcessor,
	logger sparkify.Logger,
) *LoadService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}
	if catalog == nil || catalog.Category() != sparkify.CategoryCatalog {
		panic("catalog must be a catalog file processor")
	}
	if activity == nil || activity.Category() != sparkify.CategoryActivity {
		panic("activity must be an activity file processor")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		sessions: sessions,
		runner:   runner,
		catalog:  catalog,
		activity: activity,
		logger:   logger,
	}
}

// Run loads config.SongDataPath then config.LogDataPath. The returned report
// covers every phase that started, also when err is non-nil. A run that
// finished but skipped files or statements returns ErrLoadIncomplete.
func (s *LoadService) Run(ctx context.Context, config sparkify.LoadConfig) (*sparkify.LoadReport, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	session, err := s.sessions.PrepareSession(ctx, &config.Connection)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	report := &sparkify.LoadReport{RunID: session.RunID()}
	s.logger.Verbose("Run %s: loading %s then %s", report.RunID, config.SongDataPath, config.LogDataPath)

	phases := []etl.Phase{
		{Root: config.SongDataPath, Processor: s.catalog},
		{Root: config.LogDataPath, Processor: s.activity},
	}
	report.Phases, err = s.runner.Run(ctx, session.Conn(), phases...)
	if err != nil {
		return report, err
	}

	if err := report.Err(); err != nil {
		return report, err
	}
	s.logger.Info("✓ Load completed successfully")
	return report, nil
}
