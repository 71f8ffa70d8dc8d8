// Package streak tracks consecutive days of activity.
//
// It is independent from leveling; both only agree on how a timestamp
// maps to a UTC calendar day.
package streak

import (
	"time"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
)

// Record registers activity at now and returns the updated streak.
// Repeated activity on the same day does not change the counters.
func Record(s entities.Streak, now time.Time) entities.Streak {
	today := entities.DateKey(now)
	if s.LastActivityDate == today {
		return s
	}

	next := s
	if s.LastActivityDate == entities.PreviousDateKey(now) && s.Current > 0 {
		next.Current++
	} else {
		next.Current = 1
	}
	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastActivityDate = today

	return next
}

// Alive reports whether the streak can still be extended at now, that is
// the last activity happened today or yesterday.
func Alive(s entities.Streak, now time.Time) bool {
	if s.Current == 0 {
		return false
	}
	return s.LastActivityDate == entities.DateKey(now) ||
		s.LastActivityDate == entities.PreviousDateKey(now)
}

// CutoffDateKey returns the oldest activity date that still keeps a streak
// alive at now. Streaks with an older date are broken.
func CutoffDateKey(now time.Time) string {
	return entities.PreviousDateKey(now)
}
