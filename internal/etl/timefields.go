package etl

import "time"

// TimeFields are the calendar attributes of one play instant.
type TimeFields struct {
	StartTime time.Time
	Hour      int
	Day       int
	Week      int // ISO-8601 week number
	Month     int
	Year      int // calendar year, not ISO year
	Weekday   int // Monday = 0
}

// DeriveTime interprets ts as milliseconds since the Unix epoch in UTC.
func DeriveTime(ts int64) TimeFields {
	t := time.UnixMilli(ts).UTC()
	_, week := t.ISOWeek()

	return TimeFields{
		StartTime: t,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}
