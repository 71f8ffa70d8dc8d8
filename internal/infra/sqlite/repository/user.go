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

type UserRepository struct {
	db sqlite.DBTX
}

func NewUserRepository(db sqlite.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, display_name, chat_id, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.DisplayName, user.ChatID, user.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return n == 1, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, display_name, chat_id, created_at FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.DisplayName, &user.ChatID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) LinkChat(ctx context.Context, userID, chatID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET chat_id = ? WHERE id = ?`, chatID, userID)
	if err != nil {
		return fmt.Errorf("link chat: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("link chat: %w", err)
	}
	if n == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
