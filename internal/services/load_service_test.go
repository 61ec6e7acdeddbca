package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/sparkify/internal/etl"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

type stubProcessor struct {
	category sparkify.FileCategory
}

func (p stubProcessor) Category() sparkify.FileCategory { return p.category }

func (p stubProcessor) Process(context.Context, pgx.Tx, string) (etl.FileResult, error) {
	return etl.FileResult{}, nil
}

type recordingRunner struct {
	phases []etl.Phase
}

func (r *recordingRunner) Run(_ context.Context, _ etl.TxBeginner, phases ...etl.Phase) ([]sparkify.PhaseReport, error) {
	r.phases = phases
	return nil, nil
}

var (
	catalogStub  = stubProcessor{category: sparkify.CategoryCatalog}
	activityStub = stubProcessor{category: sparkify.CategoryActivity}
)

func loadConfig() sparkify.LoadConfig {
	return sparkify.LoadConfig{
		Connection:   sparkify.ConnectionConfig{Host: "localhost", Database: "sparkifydb"},
		SongDataPath: "data/song_data",
		LogDataPath:  "data/log_data",
	}
}

func TestLoadService_InvalidConfig(t *testing.T) {
	runner := &recordingRunner{}
	svc := NewLoadService(&fakePreparer{}, runner, catalogStub, activityStub, &mockLogger{})

	cfg := loadConfig()
	cfg.LogDataPath = ""
	report, err := svc.Run(context.Background(), cfg)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, sparkify.ErrInvalidConfig)
	assert.Nil(t, runner.phases)
}

func TestLoadService_SessionFailure(t *testing.T) {
	runner := &recordingRunner{}
	svc := NewLoadService(&fakePreparer{err: errPrepare}, runner, catalogStub, activityStub, &mockLogger{})

	report, err := svc.Run(context.Background(), loadConfig())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, errPrepare)
	assert.Nil(t, runner.phases, "no phase starts without a session")
}

func TestNewLoadService_ProcessorRoles(t *testing.T) {
	runner := &recordingRunner{}
	assert.Panics(t, func() { NewLoadService(&fakePreparer{}, runner, activityStub, catalogStub, &mockLogger{}) })
	assert.Panics(t, func() { NewLoadService(&fakePreparer{}, runner, nil, activityStub, &mockLogger{}) })
	assert.Panics(t, func() { NewLoadService(nil, runner, catalogStub, activityStub, &mockLogger{}) })
	assert.Panics(t, func() { NewLoadService(&fakePreparer{}, nil, catalogStub, activityStub, &mockLogger{}) })
	assert.NotPanics(t, func() { NewLoadService(&fakePreparer{}, runner, catalogStub, activityStub, &mockLogger{}) })
}
