package rest

import (
	"context"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID int64, displayName string) (bool, error)
}

type ProgressService interface {
	AwardXP(ctx context.Context, userID int64, req service.AwardRequest) (*entities.AwardEvent, error)
	GetProgress(ctx context.Context, userID int64) (*service.ProgressView, error)
	History(ctx context.Context, userID int64, limit int) ([]*entities.XPEvent, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, userID int64, title string, xpReward int64) (*entities.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]*entities.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int64) (*service.TaskResult, error)
	UncompleteTask(ctx context.Context, userID, taskID int64) (*service.TaskResult, error)
}

type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
}

// AwardPublisher receives awards after they are committed.
type AwardPublisher interface {
	PublishAward(ctx context.Context, event entities.AwardEvent)
}
