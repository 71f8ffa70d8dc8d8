package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/infra/sqlite"
)

type LeaderboardRepository struct {
	db sqlite.DBTX
}

func NewLeaderboardRepository(db sqlite.DBTX) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.user_id, u.display_name, p.level, p.total_points, COALESCE(s.current, 0)
		FROM user_progress p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN user_streaks s ON s.user_id = p.user_id
		ORDER BY p.total_points DESC, p.user_id ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entities.LeaderboardEntry
	for rows.Next() {
		e := entities.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Level, &e.TotalPoints, &e.Streak); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
