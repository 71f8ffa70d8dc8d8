package repository

import (
	"context"
	"database/sql"

	"github.com/aliskhannn/growth-tracker/internal/infra/sqlite"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

// Store is the SQLite backed repository.Store used for local runs and tests.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over db. The db is owned by the Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repositories() repository.Repositories {
	return bind(s.db)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return sqlite.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, bind(tx))
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func bind(db sqlite.DBTX) repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(db),
		Progress:    NewProgressRepository(db),
		Streaks:     NewStreakRepository(db),
		Tasks:       NewTaskRepository(db),
		Activity:    NewActivityRepository(db),
		Leaderboard: NewLeaderboardRepository(db),
	}
}
