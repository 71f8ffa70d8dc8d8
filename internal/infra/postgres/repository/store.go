package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/growth-tracker/internal/infra/postgres"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

// Store is the PostgreSQL backed repository.Store.
type Store struct {
	pool *pgxpool.Pool
	tr   *postgres.Transactor
}

// NewStore creates a Store over the given pool. The pool is owned by the Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		tr:   postgres.NewTransactor(pool),
	}
}

func (s *Store) Repositories() repository.Repositories {
	return bind(s.pool)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, bind(tx))
	})
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func bind(db postgres.DBTX) repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(db),
		Progress:    NewProgressRepository(db),
		Streaks:     NewStreakRepository(db),
		Tasks:       NewTaskRepository(db),
		Activity:    NewActivityRepository(db),
		Leaderboard: NewLeaderboardRepository(db),
	}
}
