package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/infra/postgres"
)

type LeaderboardRepository struct {
	db postgres.DBTX
}

func NewLeaderboardRepository(db postgres.DBTX) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Top returns users ranked by total points.
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	query := `
		SELECT p.user_id, u.display_name, p.level, p.total_points, COALESCE(s.current, 0)
		FROM user_progress p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN user_streaks s ON s.user_id = p.user_id
		ORDER BY p.total_points DESC, p.user_id ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entities.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e entities.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Level, &e.TotalPoints, &e.Streak); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
