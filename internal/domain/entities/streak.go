package entities

// Streak counts consecutive UTC days with at least one award.
type Streak struct {
	UserID           int64
	Current          int
	Longest          int
	LastActivityDate string // YYYY-MM-DD, empty before the first activity
}

func NewStreak(userID int64) *Streak {
	return &Streak{UserID: userID}
}
