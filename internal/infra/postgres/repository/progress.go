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

const progressColumns = `
	user_id, total_xp, today_xp, level, total_points,
	tasks_completed, last_xp_update_at, version
`

// ProgressRepository provides access to XP snapshots in the database.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database handle.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create inserts a zero progress record, doing nothing if one exists.
func (r *ProgressRepository) Create(ctx context.Context, progress *entities.UserProgress) error {
	query := `
		INSERT INTO user_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(
		ctx,
		query,
		progress.UserID,
		progress.TotalXP,
		progress.TodayXP,
		progress.Level,
		progress.TotalPoints,
		progress.TasksCompleted,
		progress.LastXPUpdateAt,
		progress.Version,
	)
	if err != nil {
		return fmt.Errorf("create progress: %w", err)
	}

	return nil
}

// Get retrieves the progress snapshot of a user.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	return r.get(ctx, `SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1`, userID)
}

// GetForUpdate retrieves the snapshot and takes a row lock for the rest of the transaction.
func (r *ProgressRepository) GetForUpdate(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	return r.get(ctx, `SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *ProgressRepository) get(ctx context.Context, query string, userID int64) (*entities.UserProgress, error) {
	var p entities.UserProgress
	err := r.db.QueryRow(ctx, query, userID).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &p, nil
}

// Update writes the snapshot if nobody else wrote it since it was read.
func (r *ProgressRepository) Update(ctx context.Context, progress *entities.UserProgress) error {
	query := `
		UPDATE user_progress SET
			total_xp = $3,
			today_xp = $4,
			level = $5,
			total_points = $6,
			tasks_completed = $7,
			last_xp_update_at = $8,
			version = version + 1
		WHERE user_id = $1 AND version = $2
		RETURNING version
	`

	var version int64
	err := r.db.QueryRow(
		ctx,
		query,
		progress.UserID,
		progress.Version,
		progress.TotalXP,
		progress.TodayXP,
		progress.Level,
		progress.TotalPoints,
		progress.TasksCompleted,
		progress.LastXPUpdateAt,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrStaleProgress
		}
		return fmt.Errorf("update progress: %w", err)
	}

	progress.Version = version
	return nil
}
