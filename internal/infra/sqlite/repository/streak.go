package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/infra/sqlite"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

type StreakRepository struct {
	db sqlite.DBTX
}

func NewStreakRepository(db sqlite.DBTX) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) Get(ctx context.Context, userID int64) (*entities.Streak, error) {
	var s entities.Streak
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, current, longest, last_activity_date FROM user_streaks WHERE user_id = ?`, userID,
	).Scan(&s.UserID, &s.Current, &s.Longest, &s.LastActivityDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrStreakNotFound
		}
		return nil, fmt.Errorf("get streak: %w", err)
	}

	return &s, nil
}

func (r *StreakRepository) Upsert(ctx context.Context, s *entities.Streak) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_streaks (user_id, current, longest, last_activity_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			current = excluded.current,
			longest = excluded.longest,
			last_activity_date = excluded.last_activity_date`,
		s.UserID, s.Current, s.Longest, s.LastActivityDate,
	)
	if err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}

func (r *StreakRepository) ResetBefore(ctx context.Context, dateKey string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_streaks SET current = 0 WHERE current > 0 AND last_activity_date < ?`, dateKey,
	)
	if err != nil {
		return 0, fmt.Errorf("reset streaks: %w", err)
	}
	return res.RowsAffected()
}
