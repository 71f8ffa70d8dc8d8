package entities

import "time"

// UserProgress stores the experience state of a single user.
//
// Level is derived from TotalXP and is never set on its own.
// TotalPoints mirrors TotalXP for leaderboard display and changes by
// the same amount on every award.
type UserProgress struct {
	UserID         int64
	TotalXP        int64
	TodayXP        int64      // XP earned since the last UTC day boundary seen on award
	Level          int
	TotalPoints    int64
	TasksCompleted int
	LastXPUpdateAt *time.Time // nil until the first award

	// Version is bumped on every successful write and used to reject stale snapshots.
	Version int64
}

// NewUserProgress creates the zero state of a freshly created user.
func NewUserProgress(userID int64) *UserProgress {
	return &UserProgress{
		UserID: userID,
		Level:  1,
	}
}
