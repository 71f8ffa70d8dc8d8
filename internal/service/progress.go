package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/domain/leveling"
	"github.com/aliskhannn/growth-tracker/internal/domain/streak"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

const defaultHistoryLimit = 20

// AwardRequest describes a single XP award.
type AwardRequest struct {
	Amount         int64
	TaskCompletion bool
	Reason         string // opaque correlation tag, stored in the activity log
}

// ProgressView is the read model returned to clients.
type ProgressView struct {
	Progress      entities.UserProgress
	Streak        entities.Streak
	NextLevelXP   int64
	LevelProgress float64
}

type ProgressService struct {
	store repository.Store
	now   func() time.Time
}

func NewProgressService(store repository.Store) *ProgressService {
	return &ProgressService{
		store: store,
		now:   time.Now,
	}
}

// AwardXP applies an award to an existing user in its own unit of work.
func (s *ProgressService) AwardXP(ctx context.Context, userID int64, req AwardRequest) (*entities.AwardEvent, error) {
	if err := leveling.CheckAmount(req.Amount); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	var event *entities.AwardEvent
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		event, err = awardWithin(ctx, repos, userID, req, now)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	return event, nil
}

// awardWithin runs the read-modify-write of an award against repos, which
// the caller binds to an open transaction.
func awardWithin(
	ctx context.Context,
	repos repository.Repositories,
	userID int64,
	req AwardRequest,
	now time.Time,
) (*entities.AwardEvent, error) {
	// 1. Read a consistent snapshot
	current, err := repos.Progress.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Apply the leveling rules
	next, err := leveling.Award(*current, req.Amount, now, leveling.AwardOptions{
		CountsAsTaskCompletion: req.TaskCompletion,
	})
	if err != nil {
		return nil, err
	}

	// 3. Write it back, failing if someone else got there first
	if err := repos.Progress.Update(ctx, &next); err != nil {
		return nil, err
	}

	if err := repos.Activity.Append(ctx, &entities.XPEvent{
		UserID:     userID,
		Kind:       entities.XPEventAward,
		Amount:     req.Amount,
		Reason:     req.Reason,
		LevelAfter: next.Level,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	// 4. Streaks are tracked apart from leveling and only share the day boundary
	st, err := recordStreak(ctx, repos, userID, now)
	if err != nil {
		return nil, err
	}

	return &entities.AwardEvent{
		UserID:        userID,
		Amount:        req.Amount,
		Reason:        req.Reason,
		PreviousLevel: current.Level,
		Progress:      next,
		Streak:        st,
	}, nil
}

// revokeWithin is the inverse of awardWithin, used when a task is reopened.
func revokeWithin(
	ctx context.Context,
	repos repository.Repositories,
	userID int64,
	amount int64,
	reason string,
	now time.Time,
) (*entities.UserProgress, error) {
	current, err := repos.Progress.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := leveling.Revoke(*current, amount)
	if err != nil {
		return nil, err
	}

	if err := repos.Progress.Update(ctx, &next); err != nil {
		return nil, err
	}

	if err := repos.Activity.Append(ctx, &entities.XPEvent{
		UserID:     userID,
		Kind:       entities.XPEventRevoke,
		Amount:     amount,
		Reason:     reason,
		LevelAfter: next.Level,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	return &next, nil
}

func recordStreak(ctx context.Context, repos repository.Repositories, userID int64, now time.Time) (entities.Streak, error) {
	st, err := repos.Streaks.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrStreakNotFound) {
			return entities.Streak{}, err
		}
		st = entities.NewStreak(userID)
	}

	next := streak.Record(*st, now)
	if next == *st {
		return next, nil
	}
	if err := repos.Streaks.Upsert(ctx, &next); err != nil {
		return entities.Streak{}, fmt.Errorf("record streak: %w", err)
	}

	return next, nil
}

// GetProgress returns the progress snapshot with derived level information.
func (s *ProgressService) GetProgress(ctx context.Context, userID int64) (*ProgressView, error) {
	repos := s.store.Repositories()

	p, err := repos.Progress.Get(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}

	view := &ProgressView{
		Progress:      *p,
		Streak:        entities.Streak{UserID: userID},
		NextLevelXP:   leveling.NextLevelXP(p.TotalXP),
		LevelProgress: leveling.LevelProgress(p.TotalXP),
	}

	st, err := repos.Streaks.Get(ctx, userID)
	switch {
	case err == nil:
		view.Streak = *st
		if !streak.Alive(*st, s.now()) {
			view.Streak.Current = 0
		}
	case !errors.Is(err, repository.ErrStreakNotFound):
		return nil, classify(err)
	}

	return view, nil
}

// History returns the latest XP events of the user, newest first.
func (s *ProgressService) History(ctx context.Context, userID int64, limit int) ([]*entities.XPEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	repos := s.store.Repositories()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, classify(err)
	}

	events, err := repos.Activity.ListByUser(ctx, userID, limit)
	return events, classify(err)
}
