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

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database handle.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new user, keeping an existing row untouched.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, display_name, chat_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, user.ID, user.DisplayName, user.ChatID, user.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, display_name, chat_id, created_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.DisplayName,
		&user.ChatID,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// LinkChat stores the telegram chat used for notifications.
func (r *UserRepository) LinkChat(ctx context.Context, userID, chatID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET chat_id = $2 WHERE id = $1`, userID, chatID)
	if err != nil {
		return fmt.Errorf("link chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
