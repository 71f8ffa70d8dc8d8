package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/infra/sqlite"
)

type ActivityRepository struct {
	db sqlite.DBTX
}

func NewActivityRepository(db sqlite.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, e *entities.XPEvent) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO xp_events (user_id, kind, amount, reason, level_after, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, string(e.Kind), e.Amount, e.Reason, e.LevelAfter, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}
	e.ID = id

	return nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.XPEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, amount, reason, level_after, created_at
		FROM xp_events
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list xp events: %w", err)
	}
	defer rows.Close()

	var events []*entities.XPEvent
	for rows.Next() {
		var (
			e    entities.XPEvent
			kind string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &kind, &e.Amount, &e.Reason, &e.LevelAfter, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan xp event: %w", err)
		}
		e.Kind = entities.XPEventKind(kind)
		events = append(events, &e)
	}

	return events, rows.Err()
}
