package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

// Bot is the subset of *tgbotapi.BotAPI used by the handler and notifier.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID int64, displayName string) (bool, error)
	GetUser(ctx context.Context, userID int64) (*entities.User, error)
	LinkChat(ctx context.Context, userID, chatID int64) error
}

type ProgressService interface {
	GetProgress(ctx context.Context, userID int64) (*service.ProgressView, error)
}

type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
}
