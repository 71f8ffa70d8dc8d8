package service

import (
	"context"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

type LeaderboardService struct {
	repo         repository.LeaderboardRepository
	defaultLimit int
	maxLimit     int
}

func NewLeaderboardService(repo repository.LeaderboardRepository, defaultLimit, maxLimit int) *LeaderboardService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &LeaderboardService{
		repo:         repo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Top returns the highest ranked users. Non-positive limits fall back to
// the default, larger ones are capped.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	switch {
	case limit <= 0:
		limit = s.defaultLimit
	case limit > s.maxLimit:
		limit = s.maxLimit
	}

	entries, err := s.repo.Top(ctx, limit)
	return entries, classify(err)
}
