package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/domain/leveling"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

const maxTaskTitleLength = 200

// TaskResult is the outcome of toggling a task.
type TaskResult struct {
	Task     entities.Task
	Progress entities.UserProgress
	// Award is set only when completing the task awarded XP.
	Award *entities.AwardEvent
}

type TaskService struct {
	store repository.Store
	now   func() time.Time
}

func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{
		store: store,
		now:   time.Now,
	}
}

// CreateTask adds a task to the user's list.
func (s *TaskService) CreateTask(ctx context.Context, userID int64, title string, xpReward int64) (*entities.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTaskTitleLength {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, maxTaskTitleLength)
	}
	if err := leveling.CheckAmount(xpReward); err != nil {
		return nil, err
	}

	repos := s.store.Repositories()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, classify(err)
	}

	task := entities.NewTask(userID, title, xpReward)
	if err := repos.Tasks.Create(ctx, task); err != nil {
		return nil, classify(err)
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID int64) ([]*entities.Task, error) {
	repos := s.store.Repositories()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, classify(err)
	}

	tasks, err := repos.Tasks.ListByUser(ctx, userID)
	return tasks, classify(err)
}

// CompleteTask marks the task done and awards its XP in the same unit of work.
// Completing an already completed task changes nothing.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID int64) (*TaskResult, error) {
	now := s.now().UTC()

	var res TaskResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		task, err := repos.Tasks.Get(ctx, userID, taskID)
		if err != nil {
			return err
		}

		if task.Completed {
			return currentProgress(ctx, repos, task, &res)
		}

		task.Completed = true
		task.CompletedAt = &now
		if err := repos.Tasks.SetCompleted(ctx, task); err != nil {
			return err
		}

		event, err := awardWithin(ctx, repos, userID, AwardRequest{
			Amount:         task.XPReward,
			TaskCompletion: true,
			Reason:         taskReason(task.ID),
		}, now)
		if err != nil {
			return err
		}

		res.Task = *task
		res.Progress = event.Progress
		res.Award = event
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return &res, nil
}

// UncompleteTask reopens a completed task and revokes the XP it awarded.
// Reopening an open task changes nothing.
func (s *TaskService) UncompleteTask(ctx context.Context, userID, taskID int64) (*TaskResult, error) {
	now := s.now().UTC()

	var res TaskResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		task, err := repos.Tasks.Get(ctx, userID, taskID)
		if err != nil {
			return err
		}

		if !task.Completed {
			return currentProgress(ctx, repos, task, &res)
		}

		task.Completed = false
		task.CompletedAt = nil
		if err := repos.Tasks.SetCompleted(ctx, task); err != nil {
			return err
		}

		progress, err := revokeWithin(ctx, repos, userID, task.XPReward, taskReason(task.ID), now)
		if err != nil {
			return err
		}

		res.Task = *task
		res.Progress = *progress
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return &res, nil
}

func currentProgress(ctx context.Context, repos repository.Repositories, task *entities.Task, res *TaskResult) error {
	p, err := repos.Progress.Get(ctx, task.UserID)
	if err != nil {
		return err
	}
	res.Task = *task
	res.Progress = *p
	return nil
}

func taskReason(taskID int64) string {
	return fmt.Sprintf("task:%d", taskID)
}
