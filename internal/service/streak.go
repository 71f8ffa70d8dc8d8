package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/growth-tracker/internal/domain/streak"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

// DefaultSweepSchedule runs the sweep shortly after UTC midnight.
const DefaultSweepSchedule = "5 0 * * *"

// StreakService resets streaks that were not extended in time.
type StreakService struct {
	repo     repository.StreakRepository
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

func NewStreakService(repo repository.StreakRepository, schedule string, logger *zap.Logger) *StreakService {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &StreakService{
		repo:     repo,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep on schedule until ctx is cancelled.
func (s *StreakService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sweeping broken streaks")
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("failed to sweep streaks", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add streak sweep job: %w", err)
	}

	c.Start()
	s.logger.Info("streak sweeper started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	// Wait for a running sweep to finish.
	<-c.Stop().Done()
	s.logger.Info("streak sweeper stopped")

	return nil
}

// Sweep zeroes current streaks whose last activity is older than yesterday.
func (s *StreakService) Sweep(ctx context.Context) (int64, error) {
	cutoff := streak.CutoffDateKey(s.now())

	n, err := s.repo.ResetBefore(ctx, cutoff)
	if err != nil {
		return 0, classify(err)
	}

	s.logger.Info("streaks swept",
		zap.String("cutoff", cutoff),
		zap.Int64("reset", n),
	)

	return n, nil
}
