package streak

import (
	"reflect"
	"testing"

	"github.com/julianstephens/tend/internal/ledger"
	"github.com/julianstephens/tend/internal/recurrence"
)

func mustLedger(t *testing.T, dates ...string) *ledger.Ledger {
	t.Helper()
	l, err := ledger.FromDates(dates)
	if err != nil {
		t.Fatalf("FromDates failed: %v", err)
	}
	return l
}

func TestCurrent_Daily(t *testing.T) {
	daily := recurrence.Rule{Repetition: recurrence.Daily}

	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{
			name:  "empty ledger",
			dates: nil,
			today: "2024-01-05",
			want:  0,
		},
		{
			name:  "five consecutive days ending today",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"},
			today: "2024-01-05",
			want:  5,
		},
		{
			name:  "streak alive with yesterday grace",
			dates: []string{"2024-01-03", "2024-01-04"},
			today: "2024-01-05",
			want:  2,
		},
		{
			name:  "stale after two missed days",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			today: "2024-01-05",
			want:  0,
		},
		{
			name:  "broken streak counts only the tail",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"},
			today: "2024-01-05",
			want:  1,
		},
		{
			name:  "single completion today",
			dates: []string{"2024-01-05"},
			today: "2024-01-05",
			want:  1,
		},
		{
			name:  "future-dated today beyond grace",
			dates: []string{"2024-01-01"},
			today: "2024-01-10",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := mustLedger(t, tt.dates...)
			if got := Current(led, daily, tt.today); got != tt.want {
				t.Errorf("Current = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrent_WeeklyCadence(t *testing.T) {
	// Sunday-only habit completed on three consecutive Sundays. The 7-day
	// calendar gap is within the weekly threshold, so the streak is 3.
	rule := recurrence.Rule{Repetition: recurrence.Weekly, SpecificDays: []int{0}}
	led := mustLedger(t, "2024-01-07", "2024-01-14", "2024-01-21")

	if got := Current(led, rule, "2024-01-21"); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}

	// Eight days after the last Sunday the streak is stale.
	if got := Current(led, rule, "2024-01-29"); got != 0 {
		t.Errorf("Current after staleness window = %d, want 0", got)
	}
}

func TestCurrent_MonthlyCadence(t *testing.T) {
	rule := recurrence.Rule{Repetition: recurrence.Monthly, SpecificDays: []int{1}}
	led := mustLedger(t, "2024-01-01", "2024-02-01", "2024-03-01")

	// Jan->Feb is a 31-day gap, Feb->Mar is 29 in a leap year; both within the
	// monthly threshold.
	if got := Current(led, rule, "2024-03-01"); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}

	if got := Current(led, rule, "2024-04-15"); got != 0 {
		t.Errorf("Current long after last completion = %d, want 0", got)
	}
}

func TestRuns(t *testing.T) {
	daily := recurrence.Rule{Repetition: recurrence.Daily}

	tests := []struct {
		name  string
		dates []string
		want  []int
	}{
		{
			name:  "empty",
			dates: nil,
			want:  nil,
		},
		{
			name:  "single run",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			want:  []int{3},
		},
		{
			name:  "broken streak",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"},
			want:  []int{3, 1},
		},
		{
			name:  "multiple runs",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-20"},
			want:  []int{2, 3, 1},
		},
		{
			name:  "lone completion",
			dates: []string{"2024-01-01"},
			want:  []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := mustLedger(t, tt.dates...)
			if got := Runs(led, daily); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Runs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBest_Monotonic(t *testing.T) {
	daily := recurrence.Rule{Repetition: recurrence.Daily}
	led := mustLedger(t, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05")

	if got := Best(led, daily, 0); got != 3 {
		t.Errorf("Best = %d, want 3", got)
	}

	// A previously recorded best is never lost, even when the ledger no longer
	// supports it.
	if got := Best(led, daily, 10); got != 10 {
		t.Errorf("Best with larger existing = %d, want 10", got)
	}

	// Negative stored values are clamped.
	if got := Best(mustLedger(t), daily, -4); got != 0 {
		t.Errorf("Best on empty ledger with negative existing = %d, want 0", got)
	}
}

func TestRecompute(t *testing.T) {
	daily := recurrence.Rule{Repetition: recurrence.Daily}

	t.Run("broken streak scenario", func(t *testing.T) {
		led := mustLedger(t, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05")
		got := Recompute(led, daily, "2024-01-05", 0)
		want := Result{CurrentStreak: 1, BestStreak: 3, CurrentCounter: 4}
		if got != want {
			t.Errorf("Recompute = %+v, want %+v", got, want)
		}
	})

	t.Run("current streak never exceeds best", func(t *testing.T) {
		led := mustLedger(t, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
		got := Recompute(led, daily, "2024-01-05", 0)
		if got.BestStreak < got.CurrentStreak {
			t.Errorf("BestStreak %d < CurrentStreak %d", got.BestStreak, got.CurrentStreak)
		}
		if got.CurrentStreak != 5 {
			t.Errorf("CurrentStreak = %d, want 5", got.CurrentStreak)
		}
	})

	t.Run("empty ledger yields zeroes", func(t *testing.T) {
		got := Recompute(mustLedger(t), daily, "2024-01-05", 0)
		if got != (Result{}) {
			t.Errorf("Recompute on empty ledger = %+v, want zero result", got)
		}
	})

	t.Run("best monotone across mutations", func(t *testing.T) {
		led := mustLedger(t, "2024-01-01", "2024-01-02", "2024-01-03")
		first := Recompute(led, daily, "2024-01-03", 0)
		if first.BestStreak != 3 {
			t.Fatalf("BestStreak = %d, want 3", first.BestStreak)
		}

		// Unmark the middle day; the stored best must survive.
		if err := led.SetCompleted("2024-01-02", false); err != nil {
			t.Fatalf("SetCompleted failed: %v", err)
		}
		second := Recompute(led, daily, "2024-01-03", first.BestStreak)
		if second.BestStreak != 3 {
			t.Errorf("BestStreak after pruning = %d, want 3", second.BestStreak)
		}
		if second.CurrentStreak != 1 {
			t.Errorf("CurrentStreak after pruning = %d, want 1", second.CurrentStreak)
		}
	})
}
