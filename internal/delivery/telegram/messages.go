// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgWelcome        = "Welcome! Every completed task earns XP. Reach 1000 XP per level, up to level 15.\nUse /progress to see where you are."
	msgHelp           = "/progress - level, XP and streak\n/leaderboard - top players\n/start - register this chat for level-up messages"
	msgNotRegistered  = "You are not registered yet. Send /start first."
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Send /help to see what I can do."
	msgEmptyBoard     = "Nobody is on the leaderboard yet."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}
