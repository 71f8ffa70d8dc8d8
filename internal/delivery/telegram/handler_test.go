package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) StopReceivingUpdates() {}

type fakeUsers struct {
	users  map[int64]*entities.User
	linked map[int64]int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*entities.User{}, linked: map[int64]int64{}}
}

func (f *fakeUsers) EnsureUser(_ context.Context, userID int64, name string) (bool, error) {
	if _, ok := f.users[userID]; ok {
		return false, nil
	}
	f.users[userID] = entities.NewUser(userID, name)
	return true, nil
}

func (f *fakeUsers) GetUser(_ context.Context, userID int64) (*entities.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, service.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) LinkChat(_ context.Context, userID, chatID int64) error {
	u, ok := f.users[userID]
	if !ok {
		return service.ErrNotFound
	}
	u.ChatID = &chatID
	f.linked[userID] = chatID
	return nil
}

type fakeProgress struct {
	view *service.ProgressView
	err  error
}

func (f *fakeProgress) GetProgress(context.Context, int64) (*service.ProgressView, error) {
	return f.view, f.err
}

type fakeLeaderboard struct {
	entries []entities.LeaderboardEntry
}

func (f *fakeLeaderboard) Top(context.Context, int) ([]entities.LeaderboardEntry, error) {
	return f.entries, nil
}

func commandUpdate(userID, chatID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: userID, FirstName: "Ann"},
			Chat:     &tgbotapi.Chat{ID: chatID},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		},
	}
}

func TestStartLinksChat(t *testing.T) {
	bot := &fakeBot{}
	users := newFakeUsers()
	h := NewHandler(bot, zap.NewNop(), users, &fakeProgress{}, &fakeLeaderboard{})

	h.handleUpdate(context.Background(), commandUpdate(10, 500, "/start"))

	if users.linked[10] != 500 {
		t.Fatalf("chat not linked: %v", users.linked)
	}
	if users.users[10].DisplayName != "Ann" {
		t.Fatalf("display name = %q", users.users[10].DisplayName)
	}
	if len(bot.sent) != 1 || bot.sent[0].ChatID != 500 {
		t.Fatalf("sent = %+v", bot.sent)
	}
}

func TestProgressCommand(t *testing.T) {
	bot := &fakeBot{}
	progress := &fakeProgress{view: &service.ProgressView{
		Progress:      entities.UserProgress{UserID: 10, TotalXP: 1500, TodayXP: 200, Level: 1, TotalPoints: 1500, TasksCompleted: 3},
		Streak:        entities.Streak{UserID: 10, Current: 4, Longest: 6},
		NextLevelXP:   2000,
		LevelProgress: 50,
	}}
	h := NewHandler(bot, zap.NewNop(), newFakeUsers(), progress, &fakeLeaderboard{})

	h.handleUpdate(context.Background(), commandUpdate(10, 500, "/progress"))

	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(bot.sent))
	}
	text := bot.sent[0].Text
	for _, want := range []string{"Level 1 / 15", "Total XP: 1500", "500 XP to level 2", "Streak: 4 \\(best 6\\)"} {
		if !strings.Contains(text, want) {
			t.Errorf("progress message %q does not contain %q", text, want)
		}
	}
	if bot.sent[0].ReplyMarkup == nil {
		t.Error("progress message has no keyboard")
	}
}

func TestProgressCommandUnknownUser(t *testing.T) {
	bot := &fakeBot{}
	progress := &fakeProgress{err: service.ErrNotFound}
	h := NewHandler(bot, zap.NewNop(), newFakeUsers(), progress, &fakeLeaderboard{})

	h.handleUpdate(context.Background(), commandUpdate(10, 500, "/progress"))

	if len(bot.sent) != 1 || bot.sent[0].Text != md(msgNotRegistered) {
		t.Fatalf("sent = %+v", bot.sent)
	}
}

func TestInternalErrorIsHidden(t *testing.T) {
	bot := &fakeBot{}
	progress := &fakeProgress{err: errors.Join(service.ErrPersistence, errors.New("disk on fire"))}
	h := NewHandler(bot, zap.NewNop(), newFakeUsers(), progress, &fakeLeaderboard{})

	h.handleUpdate(context.Background(), commandUpdate(10, 500, "/progress"))

	if len(bot.sent) != 1 || bot.sent[0].Text != md(msgInternalError) {
		t.Fatalf("sent = %+v", bot.sent)
	}
}

func TestNotifierSendsOnlyLevelUps(t *testing.T) {
	bot := &fakeBot{}
	users := newFakeUsers()
	ctx := context.Background()
	_, _ = users.EnsureUser(ctx, 1, "Ann")
	_ = users.LinkChat(ctx, 1, 77)
	_, _ = users.EnsureUser(ctx, 2, "Bob")

	n := NewNotifier(bot, users)

	plain := entities.AwardEvent{UserID: 1, Amount: 10, PreviousLevel: 1, Progress: entities.UserProgress{Level: 1}}
	if err := n.NotifyAward(ctx, plain); err != nil {
		t.Fatalf("NotifyAward: %v", err)
	}
	if len(bot.sent) != 0 {
		t.Fatalf("sent %d messages for award without level up", len(bot.sent))
	}

	levelUp := entities.AwardEvent{UserID: 1, Amount: 1000, PreviousLevel: 1, Progress: entities.UserProgress{Level: 2, TotalXP: 2000}}
	if err := n.NotifyAward(ctx, levelUp); err != nil {
		t.Fatalf("NotifyAward: %v", err)
	}
	if len(bot.sent) != 1 || bot.sent[0].ChatID != 77 {
		t.Fatalf("sent = %+v", bot.sent)
	}

	unlinked := levelUp
	unlinked.UserID = 2
	if err := n.NotifyAward(ctx, unlinked); err != nil {
		t.Fatalf("NotifyAward: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent to user without chat")
	}
}

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "[░░░░░░░░░░]"},
		{50, "[█████░░░░░]"},
		{100, "[██████████]"},
		{150, "[██████████]"},
		{-5, "[░░░░░░░░░░]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.percent, 10); got != tt.want {
			t.Errorf("buildProgressBar(%v) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}

func TestRenderLeaderboard(t *testing.T) {
	if got := renderLeaderboard(nil); got != md(msgEmptyBoard) {
		t.Fatalf("empty board = %q", got)
	}

	got := renderLeaderboard([]entities.LeaderboardEntry{
		{Rank: 1, UserID: 2, DisplayName: "Bob", Level: 3, TotalPoints: 3000, Streak: 2},
		{Rank: 2, UserID: 9, Level: 1, TotalPoints: 10},
	})
	if !strings.Contains(got, "Bob") || !strings.Contains(got, "user 9") {
		t.Fatalf("board = %q", got)
	}
}
