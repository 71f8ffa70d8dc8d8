package repository

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrStreakNotFound   = errors.New("streak not found")
	ErrTaskNotFound     = errors.New("task not found")

	// ErrStaleProgress is returned when a progress write lost a race with another writer.
	ErrStaleProgress = errors.New("progress snapshot is stale")
)
