package entities

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// SameDay reports whether last falls on the same UTC calendar day as now.
// A nil last is never the same day.
func SameDay(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	return DateKey(*last) == DateKey(now)
}

// PreviousDateKey returns the key of the UTC day before t.
func PreviousDateKey(t time.Time) string {
	return t.UTC().AddDate(0, 0, -1).Format(dateKeyLayout)
}
