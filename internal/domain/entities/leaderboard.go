package entities

// LeaderboardEntry is a single ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank        int
	UserID      int64
	DisplayName string
	Level       int
	TotalPoints int64
	Streak      int
}
