package service

import (
	"context"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// EnsureUser creates the user with zero progress and an empty streak.
// An existing user is left untouched. It reports whether the user was created.
func (s *UserService) EnsureUser(ctx context.Context, userID int64, displayName string) (bool, error) {
	if userID <= 0 {
		return false, ErrInvalidInput
	}

	var created bool
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		created, err = repos.Users.Save(ctx, entities.NewUser(userID, displayName))
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		if err := repos.Progress.Create(ctx, entities.NewUserProgress(userID)); err != nil {
			return err
		}
		return repos.Streaks.Upsert(ctx, entities.NewStreak(userID))
	})

	return created, classify(err)
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	u, err := s.store.Repositories().Users.GetByID(ctx, userID)
	return u, classify(err)
}

// LinkChat remembers the telegram chat used for notifications.
func (s *UserService) LinkChat(ctx context.Context, userID, chatID int64) error {
	return classify(s.store.Repositories().Users.LinkChat(ctx, userID, chatID))
}
