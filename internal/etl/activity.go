package etl

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vvka-141/sparkify/internal/records"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// ActivityLoader turns NextSong events into time, user and songplays rows.
type ActivityLoader struct {
	parser *records.Parser
	logger sparkify.Logger
}

func NewActivityLoader(parser *records.Parser, logger sparkify.Logger) *ActivityLoader {
	if parser == nil {
		panic("parser cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ActivityLoader{parser: parser, logger: logger}
}

func (l *ActivityLoader) Category() sparkify.FileCategory {
	return sparkify.CategoryActivity
}

func (l *ActivityLoader) Process(ctx context.Context, tx pgx.Tx, path string) (FileResult, error) {
	batch, err := l.parser.ParseActivityFile(path)
	if err != nil {
		return FileResult{}, err
	}
	return l.Load(ctx, tx, batch)
}

// Load applies three passes over the NextSong rows in file order: all time
// rows, then all user upserts, then one songplays row per event. Other
// pages are ignored entirely.
func (l *ActivityLoader) Load(ctx context.Context, tx pgx.Tx, batch records.ActivityBatch) (FileResult, error) {
	plays := batch.Plays()
	runner := newStatementRunner(tx, l.logger, batch.Path)

	for _, row := range plays {
		tf := DeriveTime(row.TS)
		if _, err := runner.exec(ctx, insertTime,
			row.TS, tf.Hour, tf.Day, tf.Week, tf.Month, tf.Year, tf.Weekday); err != nil {
			return runner.result, err
		}
	}

	for _, row := range plays {
		if _, err := runner.exec(ctx, upsertUser,
			row.UserID, row.FirstName, row.LastName, row.Gender, row.Level); err != nil {
			return runner.result, err
		}
	}

	for _, row := range plays {
		var songID, artistID pgtype.Text
		if _, err := runner.lookup(ctx, selectSongArtist,
			[]any{row.Song, row.Artist, row.Length}, &songID, &artistID); err != nil {
			return runner.result, err
		}

		applied, err := runner.exec(ctx, insertSongplay,
			row.TS, row.UserID, row.Level, songID, artistID, row.SessionID, row.Location, row.UserAgent)
		if err != nil {
			return runner.result, err
		}
		if applied {
			runner.result.Plays++
			if !songID.Valid {
				runner.result.Unresolved++
			}
		}
	}

	return runner.result, nil
}

var _ FileProcessor = (*ActivityLoader)(nil)
