package records

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// CatalogRecord is one song catalog file.
type CatalogRecord struct {
	SongID   string
	Title    string
	Year     int32
	Duration pgtype.Numeric

	ArtistID        string
	ArtistName      string
	ArtistLocation  pgtype.Text
	ArtistLatitude  pgtype.Numeric
	ArtistLongitude pgtype.Numeric
}

// ActivityRow is one event of an activity file. Only Page, TS and Line are
// populated for rows whose page is not NextSong.
type ActivityRow struct {
	// Line is the 1-based line (JSON lines) or element index (JSON array).
	Line int

	Page string
	TS   int64

	UserID    pgtype.Int4
	FirstName string
	LastName  string
	Gender    string
	Level     string
	SessionID int32

	Song      pgtype.Text
	Artist    pgtype.Text
	Length    pgtype.Numeric
	Location  pgtype.Text
	UserAgent pgtype.Text
}

// IsPlay reports whether the row is a song play.
func (r ActivityRow) IsPlay() bool {
	return r.Page == sparkify.NextSongPage
}

// ActivityBatch is an activity file's rows in file order.
type ActivityBatch struct {
	Path string
	Rows []ActivityRow
}

// Plays returns the NextSong rows, preserving order.
func (b ActivityBatch) Plays() []ActivityRow {
	plays := make([]ActivityRow, 0, len(b.Rows))
	for _, row := range b.Rows {
		if row.IsPlay() {
			plays = append(plays, row)
		}
	}
	return plays
}
