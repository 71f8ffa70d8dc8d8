package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackRefreshProgress = "progress:refresh"
	callbackLeaderboard     = "leaderboard"
)

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", callbackRefreshProgress),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", callbackLeaderboard),
		),
	)
}
