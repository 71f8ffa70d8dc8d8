package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
)

func TestStreakSweep(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ensureUser(t, store, 1)
	ensureUser(t, store, 2)

	streaks := store.Repositories().Streaks
	_ = streaks.Upsert(ctx, &entities.Streak{UserID: 1, Current: 3, Longest: 3, LastActivityDate: "2026-06-09"})
	_ = streaks.Upsert(ctx, &entities.Streak{UserID: 2, Current: 5, Longest: 5, LastActivityDate: "2026-06-08"})

	svc := NewStreakService(streaks, "", zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 6, 10, 0, 5, 0, 0, time.UTC) }

	n, err := svc.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("Sweep reset %d, want 1", n)
	}

	s2, _ := streaks.Get(ctx, 2)
	if s2.Current != 0 || s2.Longest != 5 {
		t.Fatalf("user 2 streak %+v", s2)
	}
}

func TestStreakStartRejectsBadSchedule(t *testing.T) {
	svc := NewStreakService(nil, "not a cron spec", zap.NewNop())
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
}
