package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/infra/postgres"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

type StreakRepository struct {
	db postgres.DBTX
}

func NewStreakRepository(db postgres.DBTX) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) Get(ctx context.Context, userID int64) (*entities.Streak, error) {
	query := `
		SELECT user_id, current, longest, last_activity_date
		FROM user_streaks
		WHERE user_id = $1
	`

	var s entities.Streak
	err := r.db.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Current, &s.Longest, &s.LastActivityDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrStreakNotFound
		}
		return nil, fmt.Errorf("get streak: %w", err)
	}

	return &s, nil
}

func (r *StreakRepository) Upsert(ctx context.Context, s *entities.Streak) error {
	query := `
		INSERT INTO user_streaks (user_id, current, longest, last_activity_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			current = EXCLUDED.current,
			longest = EXCLUDED.longest,
			last_activity_date = EXCLUDED.last_activity_date
	`

	if _, err := r.db.Exec(ctx, query, s.UserID, s.Current, s.Longest, s.LastActivityDate); err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}

	return nil
}

func (r *StreakRepository) ResetBefore(ctx context.Context, dateKey string) (int64, error) {
	query := `
		UPDATE user_streaks
		SET current = 0
		WHERE current > 0 AND last_activity_date < $1
	`

	tag, err := r.db.Exec(ctx, query, dateKey)
	if err != nil {
		return 0, fmt.Errorf("reset streaks: %w", err)
	}

	return tag.RowsAffected(), nil
}
