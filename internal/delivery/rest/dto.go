package rest

import (
	"time"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

type createUserRequest struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

type awardRequest struct {
	Amount         int64  `json:"amount"`
	TaskCompletion bool   `json:"task_completion"`
	Reason         string `json:"reason"`
}

type createTaskRequest struct {
	Title    string `json:"title"`
	XPReward int64  `json:"xp_reward"`
}

type progressResponse struct {
	UserID         int64      `json:"user_id"`
	Level          int        `json:"level"`
	TotalXP        int64      `json:"total_xp"`
	TodayXP        int64      `json:"today_xp"`
	TotalPoints    int64      `json:"total_points"`
	Streak         int        `json:"streak"`
	LongestStreak  int        `json:"longest_streak"`
	TasksCompleted int        `json:"tasks_completed"`
	LastXPUpdateAt *time.Time `json:"last_xp_update_at"`
	NextLevelXP    *int64     `json:"next_level_xp,omitempty"`
	LevelProgress  *float64   `json:"level_progress,omitempty"`
}

type awardResponse struct {
	progressResponse
	LeveledUp bool `json:"leveled_up"`
}

type taskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	XPReward    int64      `json:"xp_reward"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type taskToggleResponse struct {
	Task     taskResponse     `json:"task"`
	Progress progressResponse `json:"progress"`
}

type eventResponse struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	Amount     int64     `json:"amount"`
	Reason     string    `json:"reason,omitempty"`
	LevelAfter int       `json:"level_after"`
	CreatedAt  time.Time `json:"created_at"`
}

type leaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	TotalPoints int64  `json:"total_points"`
	Streak      int    `json:"streak"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toProgress(p entities.UserProgress, st entities.Streak) progressResponse {
	return progressResponse{
		UserID:         p.UserID,
		Level:          p.Level,
		TotalXP:        p.TotalXP,
		TodayXP:        p.TodayXP,
		TotalPoints:    p.TotalPoints,
		Streak:         st.Current,
		LongestStreak:  st.Longest,
		TasksCompleted: p.TasksCompleted,
		LastXPUpdateAt: p.LastXPUpdateAt,
	}
}

func toProgressView(v *service.ProgressView) progressResponse {
	resp := toProgress(v.Progress, v.Streak)
	next, pct := v.NextLevelXP, v.LevelProgress
	if next > 0 {
		resp.NextLevelXP = &next
	}
	resp.LevelProgress = &pct
	return resp
}

func toAward(ev *entities.AwardEvent) awardResponse {
	return awardResponse{
		progressResponse: toProgress(ev.Progress, ev.Streak),
		LeveledUp:        ev.LeveledUp(),
	}
}

func toTask(t entities.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		XPReward:    t.XPReward,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func toEvent(e *entities.XPEvent) eventResponse {
	return eventResponse{
		ID:         e.ID,
		Kind:       string(e.Kind),
		Amount:     e.Amount,
		Reason:     e.Reason,
		LevelAfter: e.LevelAfter,
		CreatedAt:  e.CreatedAt,
	}
}
