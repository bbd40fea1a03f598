package util

import "time"

// UTCDayStart returns midnight UTC of the day containing t.
func UTCDayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextUTCDayStart returns midnight UTC of the day after the one containing t.
// Used to schedule the externally-triggered daily-loss reset tick.
func NextUTCDayStart(t time.Time) time.Time {
	return UTCDayStart(t).Add(24 * time.Hour)
}

// SameUTCDay reports whether a and b fall on the same UTC calendar day.
func SameUTCDay(a, b time.Time) bool {
	return UTCDayStart(a).Equal(UTCDayStart(b))
}
