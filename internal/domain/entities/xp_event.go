package entities

import "time"

// XPEventKind is the direction of an XP change.
type XPEventKind string

const (
	XPEventAward  XPEventKind = "award"
	XPEventRevoke XPEventKind = "revoke"
)

// XPEvent is an activity log entry written for every applied award or revoke.
type XPEvent struct {
	ID         int64
	UserID     int64
	Kind       XPEventKind
	Amount     int64
	Reason     string // opaque tag supplied by the caller
	LevelAfter int
	CreatedAt  time.Time
}

// AwardEvent is published to notifiers after an award has been committed.
type AwardEvent struct {
	UserID        int64
	Amount        int64
	Reason        string
	PreviousLevel int
	Progress      UserProgress
	Streak        Streak
}

// LeveledUp reports whether the award moved the user to a higher level.
func (e AwardEvent) LeveledUp() bool {
	return e.Progress.Level > e.PreviousLevel
}
