package utils

import "time"

// NowMillis returns the current time in milliseconds since epoch, the unit
// used by every persisted timestamp.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// FromMillis converts a milliseconds-since-epoch timestamp to local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}

// DayKey returns the local calendar date of a timestamp as "YYYY-MM-DD".
// Day bucketing always uses the local calendar date.
func DayKey(ms int64) string {
	return FromMillis(ms).Format("2006-01-02")
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
