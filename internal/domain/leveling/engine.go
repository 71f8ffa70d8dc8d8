// Package leveling applies XP changes to a user's progress snapshot.
//
// Functions here are pure: they take a snapshot by value and return the
// next one. Loading and storing snapshots is the caller's job.
package leveling

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
)

// ErrInvalidAmount is returned for zero or negative XP amounts, amounts above
// MaxAmount and awards that would overflow a counter.
var ErrInvalidAmount = errors.New("xp amount must be positive")

// MaxAmount caps a single award, revoke or task reward.
const MaxAmount int64 = 1_000_000_000

// AwardOptions tweaks how an award updates derived counters.
type AwardOptions struct {
	CountsAsTaskCompletion bool
}

// Award adds delta XP to p as of now.
//
// The today counter restarts when now falls on a different UTC day than the
// previous award. On error p is returned unchanged.
func Award(p entities.UserProgress, delta int64, now time.Time, opts AwardOptions) (entities.UserProgress, error) {
	if err := CheckAmount(delta); err != nil {
		return p, err
	}
	if !fits(p.TotalXP, delta) || !fits(p.TodayXP, delta) || !fits(p.TotalPoints, delta) {
		return p, fmt.Errorf("%w: total would overflow", ErrInvalidAmount)
	}

	next := p

	if !entities.SameDay(p.LastXPUpdateAt, now) {
		next.TodayXP = 0
	}

	next.TotalXP += delta
	next.TodayXP += delta
	next.TotalPoints += delta
	next.Level = LevelForXP(next.TotalXP)

	if opts.CountsAsTaskCompletion {
		next.TasksCompleted++
	}

	at := now
	next.LastXPUpdateAt = &at

	return next, nil
}

// Revoke removes delta XP from p, used when a completed task is reopened.
//
// Counters are floored at zero. No day rollover is applied and the last
// update timestamp is left as is.
func Revoke(p entities.UserProgress, delta int64) (entities.UserProgress, error) {
	if err := CheckAmount(delta); err != nil {
		return p, err
	}

	next := p
	next.TotalXP = floorSub(p.TotalXP, delta)
	next.TodayXP = floorSub(p.TodayXP, delta)
	next.TotalPoints = floorSub(p.TotalPoints, delta)
	next.Level = LevelForXP(next.TotalXP)

	if next.TasksCompleted > 0 {
		next.TasksCompleted--
	}

	return next, nil
}

func floorSub(v, delta int64) int64 {
	if delta >= v {
		return 0
	}
	return v - delta
}

// CheckAmount reports whether delta is a usable award size.
func CheckAmount(delta int64) error {
	if delta <= 0 {
		return ErrInvalidAmount
	}
	if delta > MaxAmount {
		return fmt.Errorf("%w: at most %d", ErrInvalidAmount, MaxAmount)
	}
	return nil
}

func fits(v, delta int64) bool {
	return delta <= math.MaxInt64-v
}
