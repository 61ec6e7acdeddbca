package schema

// Table pairs a table's DDL with its drop statement.
type Table struct {
	Name   string
	Create string
	Drop   string
}

var (
	Users = Table{
		Name: "users",
		Create: `CREATE TABLE IF NOT EXISTS users (
	user_id    INT PRIMARY KEY,
	first_name VARCHAR NOT NULL,
	last_name  VARCHAR NOT NULL,
	gender     VARCHAR(2) NOT NULL,
	level      VARCHAR NOT NULL
)`,
		Drop: "DROP TABLE IF EXISTS users",
	}

	Artists = Table{
		Name: "artists",
		Create: `CREATE TABLE IF NOT EXISTS artists (
	artist_id VARCHAR PRIMARY KEY,
	name      VARCHAR NOT NULL,
	location  VARCHAR,
	latitude  NUMERIC,
	longitude NUMERIC
)`,
		Drop: "DROP TABLE IF EXISTS artists",
	}

	Songs = Table{
		Name: "songs",
		Create: `CREATE TABLE IF NOT EXISTS songs (
	song_id   VARCHAR PRIMARY KEY,
	title     VARCHAR NOT NULL,
	artist_id VARCHAR NOT NULL,
	year      INT NOT NULL,
	duration  NUMERIC NOT NULL
)`,
		Drop: "DROP TABLE IF EXISTS songs",
	}

	Time = Table{
		Name: "time",
		Create: `CREATE TABLE IF NOT EXISTS time (
	start_time TIMESTAMP PRIMARY KEY,
	hour       INT NOT NULL,
	day        INT NOT NULL,
	week       INT NOT NULL,
	month      INT NOT NULL,
	year       INT NOT NULL,
	weekday    INT NOT NULL
)`,
		Drop: "DROP TABLE IF EXISTS time",
	}

	// Songplays has no foreign keys on song_id/artist_id: unresolved plays store NULL.
	Songplays = Table{
		Name: "songplays",
		Create: `CREATE TABLE IF NOT EXISTS songplays (
	songplay_id SERIAL PRIMARY KEY,
	start_time  TIMESTAMP NOT NULL REFERENCES time (start_time) ON DELETE CASCADE,
	user_id     INT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	level       VARCHAR NOT NULL,
	song_id     VARCHAR,
	artist_id   VARCHAR,
	session_id  INT NOT NULL,
	location    VARCHAR,
	user_agent  VARCHAR
)`,
		Drop: "DROP TABLE IF EXISTS songplays",
	}
)

// CreateOrder lists tables so that referenced tables come first.
var CreateOrder = []Table{Users, Artists, Songs, Time, Songplays}

// DropOrder drops the fact table before the dimensions it references.
var DropOrder = []Table{Songplays, Users, Songs, Artists, Time}
