package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/infra/postgres"
)

// ActivityRepository stores the XP event log.
type ActivityRepository struct {
	db postgres.DBTX
}

func NewActivityRepository(db postgres.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts the event and fills its ID.
func (r *ActivityRepository) Append(ctx context.Context, e *entities.XPEvent) error {
	query := `
		INSERT INTO xp_events (user_id, kind, amount, reason, level_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, e.UserID, string(e.Kind), e.Amount, e.Reason, e.LevelAfter, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}

	return nil
}

// ListByUser returns the latest events of a user, newest first.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.XPEvent, error) {
	query := `
		SELECT id, user_id, kind, amount, reason, level_after, created_at
		FROM xp_events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
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
