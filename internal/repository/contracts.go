package repository

import (
	"context"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
)

// UserRepository persists tracked identities.
type UserRepository interface {
	// Save inserts the user when missing and reports whether it was created.
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	LinkChat(ctx context.Context, userID, chatID int64) error
}

// ProgressRepository persists XP snapshots.
type ProgressRepository interface {
	Create(ctx context.Context, progress *entities.UserProgress) error
	Get(ctx context.Context, userID int64) (*entities.UserProgress, error)
	// GetForUpdate reads the snapshot and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID int64) (*entities.UserProgress, error)
	// Update writes progress only when the stored version still equals progress.Version,
	// then bumps progress.Version. A mismatch yields ErrStaleProgress.
	Update(ctx context.Context, progress *entities.UserProgress) error
}

// StreakRepository persists activity streaks.
type StreakRepository interface {
	Get(ctx context.Context, userID int64) (*entities.Streak, error)
	Upsert(ctx context.Context, streak *entities.Streak) error
	// ResetBefore zeroes current streaks whose last activity is older than dateKey.
	ResetBefore(ctx context.Context, dateKey string) (int64, error)
}

// TaskRepository persists task lists.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	Get(ctx context.Context, userID, taskID int64) (*entities.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Task, error)
	SetCompleted(ctx context.Context, task *entities.Task) error
}

// ActivityRepository persists the XP event log.
type ActivityRepository interface {
	Append(ctx context.Context, event *entities.XPEvent) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.XPEvent, error)
}

// LeaderboardRepository reads ranked progress.
type LeaderboardRepository interface {
	Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
}

// Repositories groups repositories bound to the same connection or transaction.
type Repositories struct {
	Users       UserRepository
	Progress    ProgressRepository
	Streaks     StreakRepository
	Tasks       TaskRepository
	Activity    ActivityRepository
	Leaderboard LeaderboardRepository
}

// Store hands out repositories and runs units of work.
type Store interface {
	Repositories() Repositories
	// WithinTx runs fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
