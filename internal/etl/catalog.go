package etl

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/sparkify/internal/records"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// CatalogLoader writes one song and its artist per catalog file.
type CatalogLoader struct {
	parser *records.Parser
	logger sparkify.Logger
}

func NewCatalogLoader(parser *records.Parser, logger sparkify.Logger) *CatalogLoader {
	if parser == nil {
		panic("parser cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CatalogLoader{parser: parser, logger: logger}
}

func (l *CatalogLoader) Category() sparkify.FileCategory {
	return sparkify.CategoryCatalog
}

func (l *CatalogLoader) Process(ctx context.Context, tx pgx.Tx, path string) (FileResult, error) {
	rec, err := l.parser.ParseCatalogFile(path)
	if err != nil {
		return FileResult{}, err
	}
	return l.Load(ctx, tx, path, rec)
}

// Load inserts the song then upserts the artist. A song_id that already
// exists makes the song insert fail on its own; the artist upsert still runs.
func (l *CatalogLoader) Load(ctx context.Context, tx pgx.Tx, path string, rec records.CatalogRecord) (FileResult, error) {
	runner := newStatementRunner(tx, l.logger, path)

	if _, err := runner.exec(ctx, insertSong,
		rec.SongID, rec.Title, rec.ArtistID, rec.Year, rec.Duration); err != nil {
		return runner.result, err
	}

	if _, err := runner.exec(ctx, upsertArtist,
		rec.ArtistID, rec.ArtistName, rec.ArtistLocation, rec.ArtistLatitude, rec.ArtistLongitude); err != nil {
		return runner.result, err
	}

	return runner.result, nil
}

var _ FileProcessor = (*CatalogLoader)(nil)
