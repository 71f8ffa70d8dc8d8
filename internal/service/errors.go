package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/leveling"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

var (
	// ErrInvalidAmount is returned for zero or negative XP amounts.
	ErrInvalidAmount = leveling.ErrInvalidAmount
	// ErrNotFound is returned when the user, its progress or a task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps write conflicts and backing store failures.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidInput is returned for malformed requests other than XP amounts.
	ErrInvalidInput = errors.New("invalid input")
)

// classify maps repository errors onto the service error kinds,
// keeping the original error in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrPersistence):
		return err
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProgressNotFound),
		errors.Is(err, repository.ErrTaskNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
