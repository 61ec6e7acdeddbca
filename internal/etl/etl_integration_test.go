package etl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sparkify/internal/etl"
	"github.com/vvka-141/sparkify/internal/files/filesystem"
	"github.com/vvka-141/sparkify/internal/files/scanner"
	"github.com/vvka-141/sparkify/internal/logging"
	"github.com/vvka-141/sparkify/internal/records"
	testhelpers "github.com/vvka-141/sparkify/internal/testing"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

const scenarioSong = `{"num_songs": 1, "song_id": "S1", "title": "X", "artist_id": "A1", "year": 2000,
	"duration": 180.0, "artist_name": "Band", "artist_location": "NY",
	"artist_latitude": 40.7, "artist_longitude": -74.0}`

const scenarioPlay = `{"artist":"Band","auth":"Logged In","firstName":"A","gender":"F","itemInSession":0,"lastName":"B","length":180.0,"level":"free","location":"NY","method":"PUT","page":"NextSong","registration":1540919166796.0,"sessionId":1,"song":"X","status":200,"ts":1541440000000,"userAgent":"UA","userId":"10"}`

type pipeline struct {
	pool     *pgxpool.Pool
	driver   *etl.Driver
	catalog  *etl.CatalogLoader
	activity *etl.ActivityLoader
	root     string
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	pool := testhelpers.NewSchemaDB(t)

	logger := logging.NewNullLogger()
	parser := records.NewParser(filesystem.NewOSFileSystem())
	return &pipeline{
		pool:     pool,
		driver:   etl.NewDriver(scanner.NewScanner(), logger, etl.NewLogProgress(logger)),
		catalog:  etl.NewCatalogLoader(parser, logger),
		activity: etl.NewActivityLoader(parser, logger),
		root:     t.TempDir(),
	}
}

func (p *pipeline) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(p.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (p *pipeline) run(t *testing.T) []sparkify.PhaseReport {
	t.Helper()
	reports, err := p.driver.Run(context.Background(), p.pool,
		etl.Phase{Root: filepath.Join(p.root, "song_data"), Processor: p.catalog},
		etl.Phase{Root: filepath.Join(p.root, "log_data"), Processor: p.activity},
	)
	require.NoError(t, err)
	return reports
}

func TestETL_EndToEndScenario(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/A/S1.json", scenarioSong)
	p.write(t, "log_data/2018/11/events.json", scenarioPlay+"\n")

	reports := p.run(t)
	require.Len(t, reports, 2)
	assert.False(t, reports[0].Incomplete())
	assert.False(t, reports[1].Incomplete())
	assert.Equal(t, 1, reports[1].Plays)
	assert.Equal(t, 0, reports[1].Unresolved)

	for table, want := range map[string]int{"songs": 1, "artists": 1, "users": 1, "time": 1, "songplays": 1} {
		assert.Equal(t, want, testhelpers.CountRows(t, p.pool, table), table)
	}

	ctx := context.Background()
	var level string
	require.NoError(t, p.pool.QueryRow(ctx, "SELECT level FROM users WHERE user_id = 10").Scan(&level))
	assert.Equal(t, "free", level)

	var songID, artistID pgtype.Text
	var start time.Time
	require.NoError(t, p.pool.QueryRow(ctx,
		"SELECT song_id, artist_id, start_time FROM songplays").Scan(&songID, &artistID, &start))
	assert.Equal(t, "S1", songID.String)
	assert.Equal(t, "A1", artistID.String)
	assert.True(t, time.Date(2018, 11, 5, 17, 46, 40, 0, time.UTC).Equal(start), start.String())

	var duration, latitude string
	require.NoError(t, p.pool.QueryRow(ctx,
		"SELECT s.duration::text, a.latitude::text FROM songs s, artists a").Scan(&duration, &latitude))
	assert.Equal(t, "180.0", duration)
	assert.Equal(t, "40.7", latitude)
}

func TestETL_CatalogIsIdempotent(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/a.json", scenarioSong)
	p.write(t, "song_data/b.json", `{"song_id": "S1", "title": "X", "artist_id": "A1", "year": 2000,
		"duration": 180.0, "artist_name": "Renamed", "artist_location": "LA",
		"artist_latitude": null, "artist_longitude": null}`)
	p.write(t, "log_data/.keep", "")

	reports := p.run(t)
	assert.Equal(t, 2, reports[0].Processed)
	assert.Equal(t, 1, reports[0].StatementErrors, "duplicate song_id is a contained statement error")
	assert.True(t, reports[0].Incomplete())

	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "songs"))
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "artists"))

	var name string
	var location, latitude pgtype.Text
	require.NoError(t, p.pool.QueryRow(context.Background(),
		"SELECT name, location, latitude::text FROM artists WHERE artist_id = 'A1'").Scan(&name, &location, &latitude))
	assert.Equal(t, "Band", name)
	assert.Equal(t, "LA", location.String)
	assert.False(t, latitude.Valid)

	// second run over the same tree changes nothing
	p.run(t)
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "songs"))
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "artists"))
}

func TestETL_LatestLevelWins(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/.keep", "")
	p.write(t, "log_data/1.json", `{"page":"NextSong","ts":1541440000000,"userId":"7","firstName":"A","lastName":"B","gender":"M","level":"free","sessionId":3}`)
	p.write(t, "log_data/2.json", `{"page":"NextSong","ts":1541440005000,"userId":"7","firstName":"A","lastName":"B","gender":"M","level":"paid","sessionId":3}`)

	p.run(t)

	var level string
	require.NoError(t, p.pool.QueryRow(context.Background(), "SELECT level FROM users WHERE user_id = 7").Scan(&level))
	assert.Equal(t, "paid", level)

	rows, err := p.pool.Query(context.Background(), "SELECT level FROM songplays ORDER BY start_time")
	require.NoError(t, err)
	levels, err := pgxCollectStrings(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"free", "paid"}, levels)
}

func TestETL_TimeRowsAreImmutable(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/.keep", "")
	p.write(t, "log_data/a.json", `[
		{"page":"NextSong","ts":1541440000000,"userId":"1","firstName":"A","lastName":"B","gender":"F","level":"free","sessionId":1},
		{"page":"NextSong","ts":1541440000000,"userId":"2","firstName":"C","lastName":"D","gender":"M","level":"paid","sessionId":2}
	]`)
	p.write(t, "log_data/b.json", `{"page":"NextSong","ts":1541440000000,"userId":"3","firstName":"E","lastName":"F","gender":"F","level":"free","sessionId":5}`)

	reports := p.run(t)
	assert.Equal(t, 3, reports[1].Plays)
	assert.Equal(t, 3, reports[1].Unresolved)
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "time"))
	assert.Equal(t, 3, testhelpers.CountRows(t, p.pool, "songplays"))

	want := etl.DeriveTime(1541440000000)
	var start time.Time
	var hour, day, week, month, year, weekday int
	require.NoError(t, p.pool.QueryRow(context.Background(),
		"SELECT start_time, hour, day, week, month, year, weekday FROM time").
		Scan(&start, &hour, &day, &week, &month, &year, &weekday))

	assert.True(t, want.StartTime.Equal(start), start.String())
	assert.Equal(t, []int{want.Hour, want.Day, want.Week, want.Month, want.Year, want.Weekday},
		[]int{hour, day, week, month, year, weekday})
	assert.Equal(t, []int{17, 5, 45, 11, 2018, 0}, []int{hour, day, week, month, year, weekday})
}

func TestETL_ResolutionRequiresExactTriple(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/S1.json", scenarioSong)
	p.write(t, "log_data/plays.json", `
{"page":"NextSong","ts":1541440000000,"userId":"1","firstName":"A","lastName":"B","gender":"F","level":"free","sessionId":1,"song":"X","artist":"Band","length":180.0}
{"page":"NextSong","ts":1541440001000,"userId":"1","firstName":"A","lastName":"B","gender":"F","level":"free","sessionId":1,"song":"X","artist":"Band","length":180.01}
{"page":"NextSong","ts":1541440002000,"userId":"1","firstName":"A","lastName":"B","gender":"F","level":"free","sessionId":1,"song":"X","artist":"Other","length":180.0}
`)

	reports := p.run(t)
	assert.Equal(t, 3, reports[1].Plays)
	assert.Equal(t, 2, reports[1].Unresolved)

	rows, err := p.pool.Query(context.Background(),
		"SELECT coalesce(song_id, 'NULL') || '/' || coalesce(artist_id, 'NULL') FROM songplays ORDER BY start_time")
	require.NoError(t, err)
	got, err := pgxCollectStrings(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1/A1", "NULL/NULL", "NULL/NULL"}, got)
}

func TestETL_NonPlayRowsHaveNoSideEffects(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/.keep", "")
	p.write(t, "log_data/mixed.json", `
{"page":"Home","ts":1541430000000,"userId":"20","firstName":"H","lastName":"O","gender":"M","level":"paid","sessionId":9}
{"page":"Login","ts":1541430001000,"userId":"","sessionId":9}
{"page":"NextSong","ts":1541440000000,"userId":"21","firstName":"A","lastName":"B","gender":"F","level":"free","sessionId":1}
`)

	reports := p.run(t)
	assert.Equal(t, 1, reports[1].Plays)
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "songplays"))
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "time"))
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "users"))

	var exists bool
	require.NoError(t, p.pool.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM users WHERE user_id = 20)").Scan(&exists))
	assert.False(t, exists)
}

func TestETL_MalformedFileIsRolledBack(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/.keep", "")
	p.write(t, "log_data/a_good.json", `{"page":"NextSong","ts":1541440000000,"userId":"1","firstName":"A","lastName":"B","gender":"F","level":"free","sessionId":1}`)
	p.write(t, "log_data/b_bad.json", `{"page":"NextSong","ts":1541450000000,"userId":"2","firstName":"C","lastName":"D","gender":"M","level":"paid","sessionId":2}
{"page":"NextSong","ts":`)
	p.write(t, "log_data/c_good.json", `{"page":"NextSong","ts":1541460000000,"userId":"3","firstName":"E","lastName":"F","gender":"F","level":"free","sessionId":3}`)

	reports := p.run(t)
	activity := reports[1]
	assert.Equal(t, 3, activity.Found)
	assert.Equal(t, 2, activity.Processed)
	require.Len(t, activity.Failed, 1)
	assert.Equal(t, "./b_bad.json", activity.Failed[0].Path)
	assert.ErrorIs(t, activity.Failed[0].Err, sparkify.ErrParse)

	assert.Equal(t, 2, testhelpers.CountRows(t, p.pool, "users"))
	assert.Equal(t, 2, testhelpers.CountRows(t, p.pool, "songplays"))
}

func TestETL_StatementErrorKeepsRestOfFile(t *testing.T) {
	p := newPipeline(t)
	p.write(t, "song_data/.keep", "")
	// gender exceeds VARCHAR(2): the user upsert fails, so does the play that references it
	p.write(t, "log_data/a.json", `
{"page":"NextSong","ts":1541440000000,"userId":"1","firstName":"A","lastName":"B","gender":"female","level":"free","sessionId":1}
{"page":"NextSong","ts":1541440001000,"userId":"2","firstName":"C","lastName":"D","gender":"M","level":"paid","sessionId":2}
`)

	reports := p.run(t)
	activity := reports[1]
	assert.Equal(t, 1, activity.Processed)
	assert.Empty(t, activity.Failed)
	assert.Equal(t, 2, activity.StatementErrors)
	assert.Equal(t, 1, activity.Plays)

	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "users"))
	assert.Equal(t, 2, testhelpers.CountRows(t, p.pool, "time"))
	assert.Equal(t, 1, testhelpers.CountRows(t, p.pool, "songplays"))
}
