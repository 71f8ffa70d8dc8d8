package leveling

import "testing"

func TestLevelForXPThresholds(t *testing.T) {
	for k := 1; k <= MaxLevel; k++ {
		exact := int64(XPPerLevel * k)
		if got := LevelForXP(exact); got != k {
			t.Fatalf("LevelForXP(%d)=%d, want %d", exact, got, k)
		}

		want := k - 1
		if k == 1 {
			want = 1
		}
		if got := LevelForXP(exact - 1); got != want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", exact-1, got, want)
		}
	}
}

func TestLevelForXPBounds(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1999, 1},
		{2000, 2},
		{14999, 14},
		{15000, 15},
		{1_000_000, 15},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d)=%d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXPMonotonic(t *testing.T) {
	prev := LevelForXP(0)
	for xp := int64(1); xp <= 17000; xp += 7 {
		got := LevelForXP(xp)
		if got < prev {
			t.Fatalf("LevelForXP(%d)=%d dropped below %d", xp, got, prev)
		}
		if got < MinLevel || got > MaxLevel {
			t.Fatalf("LevelForXP(%d)=%d out of range", xp, got)
		}
		prev = got
	}
}

func TestTableIsCopy(t *testing.T) {
	tbl := Table()
	if len(tbl) != MaxLevel {
		t.Fatalf("len(Table())=%d, want %d", len(tbl), MaxLevel)
	}
	tbl[0].XPThreshold = 1

	if got := LevelForXP(1); got != 1 {
		t.Fatalf("mutating Table() copy changed lookups: LevelForXP(1)=%d", got)
	}
	if Table()[0].XPThreshold != XPPerLevel {
		t.Fatalf("Table() returned shared storage")
	}
}

func TestNextLevelXPAndProgress(t *testing.T) {
	if got := NextLevelXP(0); got != 2000 {
		t.Fatalf("NextLevelXP(0)=%d, want 2000", got)
	}
	if got := NextLevelXP(2500); got != 3000 {
		t.Fatalf("NextLevelXP(2500)=%d, want 3000", got)
	}
	if got := NextLevelXP(15000); got != 0 {
		t.Fatalf("NextLevelXP(15000)=%d, want 0", got)
	}

	if got := LevelProgress(1000); got != 50 {
		t.Fatalf("LevelProgress(1000)=%v, want 50", got)
	}
	if got := LevelProgress(2500); got != 50 {
		t.Fatalf("LevelProgress(2500)=%v, want 50", got)
	}
	if got := LevelProgress(20000); got != 100 {
		t.Fatalf("LevelProgress(20000)=%v, want 100", got)
	}
}
