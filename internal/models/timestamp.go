package models

import "time"

// TimestampLayout renders ISO-8601 with millisecond precision. Times are
// converted to UTC first, so the zone always prints as "Z".
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
