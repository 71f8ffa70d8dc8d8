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

// TaskRepository provides access to user tasks in the database.
type TaskRepository struct {
	db postgres.DBTX
}

// NewTaskRepository creates a new TaskRepository with the provided database handle.
func NewTaskRepository(db postgres.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task and fills its ID.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, xp_reward, completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		task.UserID,
		task.Title,
		task.XPReward,
		task.Completed,
		task.CompletedAt,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// Get retrieves a task owned by userID.
func (r *TaskRepository) Get(ctx context.Context, userID, taskID int64) (*entities.Task, error) {
	query := `
		SELECT id, user_id, title, xp_reward, completed, completed_at, created_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	t, err := scanTask(r.db.QueryRow(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return t, nil
}

// ListByUser returns the user's tasks, oldest first.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Task, error) {
	query := `
		SELECT id, user_id, title, xp_reward, completed, completed_at, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
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

// SetCompleted stores the completion state of the task.
func (r *TaskRepository) SetCompleted(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks SET completed = $3, completed_at = $4
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, task.ID, task.UserID, task.Completed, task.CompletedAt)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var t entities.Task
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.XPReward,
		&t.Completed,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
