package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Commands is the command menu registered with telegram on startup.
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start tracking your growth"},
	{Command: "progress", Description: "Show level, XP and streak"},
	{Command: "leaderboard", Description: "Show the top players"},
	{Command: "help", Description: "Help"},
}

type Handler struct {
	bot                Bot
	logger             *zap.Logger
	userService        UserService
	progressService    ProgressService
	leaderboardService LeaderboardService
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	userService UserService,
	progressService ProgressService,
	leaderboardService LeaderboardService,
) *Handler {
	return &Handler{
		bot:                bot,
		logger:             logger,
		userService:        userService,
		progressService:    progressService,
		leaderboardService: leaderboardService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	if _, err := h.bot.Request(tgbotapi.NewSetMyCommands(Commands...)); err != nil {
		h.logger.Warn("failed to set bot commands", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, md(msgUnknownCommand)))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.startHandler(from.ID, displayName(from)))(ctx, chatID)

	case "progress":
		_ = h.withErrorHandling(h.progressHandler(from.ID, true))(ctx, chatID)

	case "leaderboard", "top":
		_ = h.withErrorHandling(h.leaderboardHandler())(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, md(msgHelp)))

	default:
		h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case callbackRefreshProgress:
		_ = h.withErrorHandling(h.progressHandler(cb.From.ID, true))(ctx, chatID)
	case callbackLeaderboard:
		_ = h.withErrorHandling(h.leaderboardHandler())(ctx, chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

func (h *Handler) startHandler(userID int64, name string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.userService.EnsureUser(ctx, userID, name); err != nil {
			return err
		}
		if err := h.userService.LinkChat(ctx, userID, chatID); err != nil {
			return err
		}

		h.send(newMessage(chatID, md(msgWelcome)))
		return nil
	}
}

func (h *Handler) progressHandler(userID int64, withKeyboard bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		view, err := h.progressService.GetProgress(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, renderProgress(view))
		if withKeyboard {
			msg.ReplyMarkup = buildProgressKeyboard()
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) leaderboardHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.leaderboardService.Top(ctx, 0)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, renderLeaderboard(entries)))
		return nil
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
