package etl

// Timestamps are computed server-side from epoch milliseconds so that the
// time dimension key and the songplays reference are built identically.
const (
	insertSong = `
		INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES ($1, $2, $3, $4, $5)`

	// name is never overwritten.
	upsertArtist = `
		INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artist_id) DO UPDATE
		SET location = EXCLUDED.location,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude`

	insertTime = `
		INSERT INTO time (start_time, hour, day, week, month, year, weekday)
		VALUES (TIMESTAMP 'epoch' + $1::bigint * INTERVAL '1 millisecond', $2, $3, $4, $5, $6, $7)
		ON CONFLICT (start_time) DO NOTHING`

	upsertUser = `
		INSERT INTO users (user_id, first_name, last_name, gender, level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET level = EXCLUDED.level`

	selectSongArtist = `
		SELECT songs.song_id, artists.artist_id
		FROM artists
		JOIN songs ON artists.artist_id = songs.artist_id
		WHERE songs.title = $1 AND artists.name = $2 AND songs.duration = $3`

	insertSongplay = `
		INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		VALUES (TIMESTAMP 'epoch' + $1::bigint * INTERVAL '1 millisecond', $2, $3, $4, $5, $6, $7, $8)`
)
