package telegram

import (
	"context"
	"fmt"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
)

// Notifier messages users about level ups in their linked chat.
type Notifier struct {
	bot   Bot
	users UserService
}

func NewNotifier(bot Bot, users UserService) *Notifier {
	return &Notifier{bot: bot, users: users}
}

// NotifyAward sends a message when the award raised the level.
// Users without a linked chat are skipped.
func (n *Notifier) NotifyAward(ctx context.Context, ev entities.AwardEvent) error {
	if !ev.LeveledUp() {
		return nil
	}

	user, err := n.users.GetUser(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user.ChatID == nil {
		return nil
	}

	if _, err := n.bot.Send(newMessage(*user.ChatID, renderLevelUp(ev))); err != nil {
		return fmt.Errorf("send level up: %w", err)
	}

	return nil
}
