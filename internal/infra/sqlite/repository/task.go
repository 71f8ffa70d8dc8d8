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

const taskColumns = `id, user_id, title, xp_reward, completed, completed_at, created_at`

type TaskRepository struct {
	db sqlite.DBTX
}

func NewTaskRepository(db sqlite.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *entities.Task) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, xp_reward, completed, completed_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.XPReward, t.Completed, t.CompletedAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.ID = id

	return nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, taskID int64) (*entities.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return t, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, t *entities.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ? AND user_id = ?`,
		t.Completed, t.CompletedAt, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	if n == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var t entities.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.XPReward, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
