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

const progressColumns = `user_id, total_xp, today_xp, level, total_points, tasks_completed, last_xp_update_at, version`

type ProgressRepository struct {
	db sqlite.DBTX
}

func NewProgressRepository(db sqlite.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, p *entities.UserProgress) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_progress (`+progressColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.TotalXP, p.TodayXP, p.Level, p.TotalPoints, p.TasksCompleted, p.LastXPUpdateAt, p.Version,
	)
	if err != nil {
		return fmt.Errorf("create progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	var p entities.UserProgress
	err := r.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = ?`, userID,
	).Scan(
		&p.UserID,
		&p.TotalXP,
		&p.TodayXP,
		&p.Level,
		&p.TotalPoints,
		&p.TasksCompleted,
		&p.LastXPUpdateAt,
		&p.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &p, nil
}

// GetForUpdate is a plain read: transactions begin IMMEDIATE, so the
// database write lock is already held.
func (r *ProgressRepository) GetForUpdate(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	return r.Get(ctx, userID)
}

func (r *ProgressRepository) Update(ctx context.Context, p *entities.UserProgress) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_progress SET
			total_xp = ?,
			today_xp = ?,
			level = ?,
			total_points = ?,
			tasks_completed = ?,
			last_xp_update_at = ?,
			version = version + 1
		WHERE user_id = ? AND version = ?`,
		p.TotalXP, p.TodayXP, p.Level, p.TotalPoints, p.TasksCompleted, p.LastXPUpdateAt,
		p.UserID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if n == 0 {
		return repository.ErrStaleProgress
	}

	p.Version++
	return nil
}
