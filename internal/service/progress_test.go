package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

func newProgressService(t *testing.T) (*ProgressService, repository.Store, *fixedClock) {
	t.Helper()
	store := newTestStore(t)
	clock := &fixedClock{t: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}

	svc := NewProgressService(store)
	svc.now = clock.Now
	return svc, store, clock
}

func TestAwardXPLevelsUp(t *testing.T) {
	svc, store, _ := newProgressService(t)
	ctx := context.Background()
	ensureUser(t, store, 1)

	ev, err := svc.AwardXP(ctx, 1, AwardRequest{Amount: 1000, Reason: "daily-goal"})
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if ev.Progress.Level != 1 || ev.Progress.TotalXP != 1000 || ev.LeveledUp() {
		t.Fatalf("after first award: %+v", ev.Progress)
	}

	ev, err = svc.AwardXP(ctx, 1, AwardRequest{Amount: 1000})
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if ev.Progress.Level != 2 || ev.Progress.TotalXP != 2000 || !ev.LeveledUp() {
		t.Fatalf("after second award: %+v", ev.Progress)
	}
	if ev.Progress.TotalPoints != ev.Progress.TotalXP {
		t.Fatalf("points %d diverged from xp %d", ev.Progress.TotalPoints, ev.Progress.TotalXP)
	}
	if ev.Streak.Current != 1 {
		t.Fatalf("streak=%d, want 1", ev.Streak.Current)
	}

	view, err := svc.GetProgress(ctx, 1)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if view.Progress.Version != 2 || view.NextLevelXP != 3000 || view.LevelProgress != 0 {
		t.Fatalf("unexpected view %+v", view)
	}

	events, err := svc.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 2 || events[1].Reason != "daily-goal" || events[0].LevelAfter != 2 {
		t.Fatalf("unexpected history %+v", events)
	}
}

func TestAwardXPRejectsInvalidAmount(t *testing.T) {
	svc, store, _ := newProgressService(t)
	ctx := context.Background()
	ensureUser(t, store, 1)

	for _, amount := range []int64{0, -5} {
		if _, err := svc.AwardXP(ctx, 1, AwardRequest{Amount: amount}); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("AwardXP(%d) err=%v, want ErrInvalidAmount", amount, err)
		}
	}

	view, err := svc.GetProgress(ctx, 1)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if view.Progress.Version != 0 || view.Progress.TotalXP != 0 {
		t.Fatalf("invalid award mutated progress: %+v", view.Progress)
	}
}

func TestAwardXPUnknownUser(t *testing.T) {
	svc, _, _ := newProgressService(t)

	_, err := svc.AwardXP(context.Background(), 99, AwardRequest{Amount: 10})
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, repository.ErrProgressNotFound) {
		t.Fatalf("err=%v, want ErrNotFound wrapping ErrProgressNotFound", err)
	}
}

func TestAwardXPDayRolloverAndStreak(t *testing.T) {
	svc, store, clock := newProgressService(t)
	ctx := context.Background()
	ensureUser(t, store, 1)

	if _, err := svc.AwardXP(ctx, 1, AwardRequest{Amount: 40}); err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	clock.Advance(2 * time.Hour)
	ev, err := svc.AwardXP(ctx, 1, AwardRequest{Amount: 10})
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if ev.Progress.TodayXP != 50 {
		t.Fatalf("same day TodayXP=%d, want 50", ev.Progress.TodayXP)
	}

	clock.Advance(24 * time.Hour)
	ev, err = svc.AwardXP(ctx, 1, AwardRequest{Amount: 10})
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if ev.Progress.TodayXP != 10 || ev.Progress.TotalXP != 60 {
		t.Fatalf("after rollover: %+v", ev.Progress)
	}
	if ev.Streak.Current != 2 || ev.Streak.Longest != 2 {
		t.Fatalf("streak %+v, want 2/2", ev.Streak)
	}

	// Three days idle: the stored streak is stale and reads as broken.
	clock.Advance(72 * time.Hour)
	view, err := svc.GetProgress(ctx, 1)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if view.Streak.Current != 0 || view.Streak.Longest != 2 {
		t.Fatalf("stale streak shown as %+v", view.Streak)
	}
}

func TestAwardXPConcurrentSameUser(t *testing.T) {
	svc, store, _ := newProgressService(t)
	ctx := context.Background()
	ensureUser(t, store, 1)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AwardXP(ctx, 1, AwardRequest{Amount: 10}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent AwardXP: %v", err)
	}

	view, err := svc.GetProgress(ctx, 1)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if view.Progress.TotalXP != workers*10 || view.Progress.Version != workers {
		t.Fatalf("lost updates: %+v", view.Progress)
	}
}

// staleStore wraps a store so that every progress write loses the race.
type staleStore struct {
	repository.Store
}

type staleProgress struct {
	repository.ProgressRepository
}

func (staleProgress) Update(context.Context, *entities.UserProgress) error {
	return repository.ErrStaleProgress
}

func (s staleStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		repos.Progress = staleProgress{repos.Progress}
		return fn(ctx, repos)
	})
}

func TestAwardXPStaleSnapshot(t *testing.T) {
	store := newTestStore(t)
	ensureUser(t, store, 1)
	svc := NewProgressService(staleStore{store})

	_, err := svc.AwardXP(context.Background(), 1, AwardRequest{Amount: 10})
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, repository.ErrStaleProgress) {
		t.Fatalf("err=%v, want ErrPersistence wrapping ErrStaleProgress", err)
	}

	events, err := svc.History(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("failed award left %d activity events", len(events))
	}
}
