package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aliskhannn/growth-tracker/internal/domain/leveling"
)

func TestTaskToggleAwardsAndRevokes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ensureUser(t, store, 1)

	svc := NewTaskService(store)
	svc.now = func() time.Time { return time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC) }

	task, err := svc.CreateTask(ctx, 1, "  drink water  ", 250)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Title != "drink water" {
		t.Fatalf("title not trimmed: %q", task.Title)
	}

	res, err := svc.CompleteTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Award == nil || res.Progress.TotalXP != 250 || res.Progress.TasksCompleted != 1 || !res.Task.Completed {
		t.Fatalf("after complete: %+v", res)
	}

	res, err = svc.CompleteTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask again: %v", err)
	}
	if res.Award != nil || res.Progress.TotalXP != 250 {
		t.Fatalf("second complete awarded again: %+v", res)
	}

	res, err = svc.UncompleteTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("UncompleteTask: %v", err)
	}
	if res.Task.Completed || res.Task.CompletedAt != nil {
		t.Fatalf("task still completed: %+v", res.Task)
	}
	if res.Progress.TotalXP != 0 || res.Progress.TotalPoints != 0 || res.Progress.TasksCompleted != 0 || res.Progress.Level != 1 {
		t.Fatalf("after uncomplete: %+v", res.Progress)
	}

	res, err = svc.UncompleteTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("UncompleteTask again: %v", err)
	}
	if res.Progress.Version != 2 {
		t.Fatalf("no-op uncomplete wrote progress: %+v", res.Progress)
	}

	tasks, err := svc.ListTasks(ctx, 1)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Completed {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
}

func TestTaskValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ensureUser(t, store, 1)
	svc := NewTaskService(store)

	if _, err := svc.CreateTask(ctx, 1, " ", 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty title err=%v", err)
	}
	if _, err := svc.CreateTask(ctx, 1, "run", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero reward err=%v", err)
	}
	if _, err := svc.CreateTask(ctx, 1, "run", leveling.MaxAmount+1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("oversized reward err=%v", err)
	}
	if _, err := svc.CreateTask(ctx, 1, strings.Repeat("a", maxTaskTitleLength+1), 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("long title err=%v", err)
	}
	// Length is counted in characters, not bytes.
	if _, err := svc.CreateTask(ctx, 1, strings.Repeat("я", maxTaskTitleLength), 10); err != nil {
		t.Fatalf("cyrillic title: %v", err)
	}
	if _, err := svc.CreateTask(ctx, 2, "run", 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user err=%v", err)
	}
	if _, err := svc.CompleteTask(ctx, 1, 12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown task err=%v", err)
	}
}
