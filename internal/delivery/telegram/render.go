package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/domain/leveling"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

const progressBarLength = 20

func renderProgress(view *service.ProgressView) string {
	p := view.Progress

	next := "max level"
	if view.NextLevelXP > 0 {
		next = fmt.Sprintf("%d XP to level %d", view.NextLevelXP-p.TotalXP, p.Level+1)
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n%s\n%s\n%s\n%s\n",
		bold(fmt.Sprintf("📊 Level %d / %d", p.Level, leveling.MaxLevel)),
		md(buildProgressBar(view.LevelProgress, progressBarLength)+" "+next),
		md(fmt.Sprintf("⭐ Total XP: %d", p.TotalXP)),
		md(fmt.Sprintf("☀️ Today: %d XP", p.TodayXP)),
		md(fmt.Sprintf("🏆 Points: %d", p.TotalPoints)),
		md(fmt.Sprintf("✅ Tasks completed: %d", p.TasksCompleted)),
		md(fmt.Sprintf("🔥 Streak: %d (best %d)", view.Streak.Current, view.Streak.Longest)),
	)
}

func renderLeaderboard(entries []entities.LeaderboardEntry) string {
	if len(entries) == 0 {
		return md(msgEmptyBoard)
	}

	var b strings.Builder
	b.WriteString(bold("🏆 Leaderboard"))
	b.WriteString("\n\n")

	for _, e := range entries {
		name := e.DisplayName
		if name == "" {
			name = fmt.Sprintf("user %d", e.UserID)
		}
		line := fmt.Sprintf("%d. %s - lvl %d, %d pts", e.Rank, name, e.Level, e.TotalPoints)
		if e.Streak > 0 {
			line += fmt.Sprintf(", 🔥%d", e.Streak)
		}
		b.WriteString(md(line))
		b.WriteString("\n")
	}

	return b.String()
}

func renderLevelUp(ev entities.AwardEvent) string {
	return fmt.Sprintf("%s\n%s",
		bold(fmt.Sprintf("🎉 Level up! You reached level %d", ev.Progress.Level)),
		md(fmt.Sprintf("+%d XP, %d XP in total", ev.Amount, ev.Progress.TotalXP)),
	)
}

// buildProgressBar creates ASCII progress bar for a percentage in [0, 100].
func buildProgressBar(percent float64, length int) string {
	filled := int(percent / 100 * float64(length))
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
