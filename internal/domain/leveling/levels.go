package leveling

const (
	// MinLevel is the floor level, held even at zero XP.
	MinLevel = 1
	// MaxLevel is the last tier of the table.
	MaxLevel = 15
	// XPPerLevel is the threshold step: level L requires XPPerLevel*L total XP.
	XPPerLevel = 1000
)

// Tier is a single row of the level table.
type Tier struct {
	Level       int
	XPThreshold int64
}

var table = buildTable()

func buildTable() [MaxLevel]Tier {
	var t [MaxLevel]Tier
	for i := range t {
		level := i + 1
		t[i] = Tier{Level: level, XPThreshold: int64(XPPerLevel * level)}
	}
	return t
}

// Table returns a copy of the level table sorted by ascending threshold.
func Table() []Tier {
	out := make([]Tier, len(table))
	copy(out, table[:])
	return out
}

// LevelForXP returns the highest level whose threshold is <= totalXP.
// Thresholds are inclusive. Below the first threshold the level is MinLevel.
func LevelForXP(totalXP int64) int {
	level := MinLevel
	for _, t := range table {
		if t.XPThreshold > totalXP {
			break
		}
		level = t.Level
	}
	return level
}

// ThresholdForLevel returns the total XP needed to reach level.
// Levels below the table are clamped to 0 and above it to the last threshold.
func ThresholdForLevel(level int) int64 {
	if level <= MinLevel {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return table[level-1].XPThreshold
}

// NextLevelXP returns the total XP at which the level after the one implied
// by totalXP starts. At MaxLevel it returns 0.
func NextLevelXP(totalXP int64) int64 {
	level := LevelForXP(totalXP)
	if level >= MaxLevel {
		return 0
	}
	// Level 1 is held from 0 up to the level-2 threshold.
	return table[level].XPThreshold
}

// LevelProgress returns how far totalXP is between the current level's
// threshold and the next one, as a percentage in [0, 100].
func LevelProgress(totalXP int64) float64 {
	level := LevelForXP(totalXP)
	if level >= MaxLevel {
		return 100
	}
	floor := ThresholdForLevel(level)
	next := table[level].XPThreshold
	if totalXP <= floor {
		return 0
	}
	return float64(totalXP-floor) / float64(next-floor) * 100
}
