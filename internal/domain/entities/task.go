package entities

import "time"

// Task is a to-do item that awards XPReward when completed.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	XPReward    int64
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

func NewTask(userID int64, title string, xpReward int64) *Task {
	return &Task{
		UserID:    userID,
		Title:     title,
		XPReward:  xpReward,
		CreatedAt: time.Now().UTC(),
	}
}
