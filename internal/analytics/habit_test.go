package analytics

import (
	"testing"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/recurrence"
)

func newHabit(t *testing.T, rep recurrence.Repetition, specificDays []int, completed ...string) *models.Habit {
	t.Helper()
	h := &models.Habit{
		ID:           "habit-1",
		UserID:       "user-1",
		Name:         "Test Habit",
		Repetition:   rep,
		SpecificDays: specificDays,
		IsActive:     true,
	}
	led := h.Ledger()
	for _, d := range completed {
		if err := led.SetCompleted(d, true); err != nil {
			t.Fatalf("SetCompleted(%q) failed: %v", d, err)
		}
	}
	h.CompletedDays = led.Encoded()
	return h
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name  string
		habit *models.Habit
		start string
		end   string
		want  float64
	}{
		{
			name:  "daily habit fully completed",
			habit: newHabit(t, recurrence.Daily, nil, "2024-01-01", "2024-01-02", "2024-01-03"),
			start: "2024-01-01",
			end:   "2024-01-03",
			want:  1,
		},
		{
			name:  "daily habit partially completed",
			habit: newHabit(t, recurrence.Daily, nil, "2024-01-01", "2024-01-03"),
			start: "2024-01-01",
			end:   "2024-01-04",
			want:  0.5,
		},
		{
			name:  "only due dates count",
			habit: newHabit(t, recurrence.Weekly, []int{0}, "2024-01-07"), // Sundays only
			start: "2024-01-01",
			end:   "2024-01-07",
			want:  1,
		},
		{
			name:  "no due dates in window reports zero",
			habit: newHabit(t, recurrence.Weekly, []int{0}),
			start: "2024-01-08", // Mon
			end:   "2024-01-13", // Sat
			want:  0,
		},
		{
			name:  "empty ledger",
			habit: newHabit(t, recurrence.Daily, nil),
			start: "2024-01-01",
			end:   "2024-01-07",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SuccessRate(tt.habit, tt.start, tt.end)
			if err != nil {
				t.Fatalf("SuccessRate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SuccessRate = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("SuccessRate = %v out of [0,1]", got)
			}
		})
	}
}

func TestSuccessRate_InvalidWindow(t *testing.T) {
	h := newHabit(t, recurrence.Daily, nil)
	if _, err := SuccessRate(h, "2024-01-07", "2024-01-01"); err == nil {
		t.Error("SuccessRate with inverted window should fail")
	}
}

func TestBreakdown(t *testing.T) {
	// Two full weeks, daily habit. Sundays always completed, Mondays never,
	// everything else once out of twice.
	h := newHabit(t, recurrence.Daily, nil,
		"2024-01-07", "2024-01-14", // both Sundays
		"2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13",
	)

	bd, err := Breakdown(h, "2024-01-07", "2024-01-20")
	if err != nil {
		t.Fatalf("Breakdown failed: %v", err)
	}

	if bd.Days[0].Total != 2 || bd.Days[0].Completed != 2 {
		t.Errorf("Sunday stats = %+v, want 2/2", bd.Days[0])
	}
	if bd.Days[1].Completed != 0 {
		t.Errorf("Monday completed = %d, want 0", bd.Days[1].Completed)
	}
	if bd.Best != 0 {
		t.Errorf("Best = %d, want 0 (Sunday)", bd.Best)
	}
	if bd.Worst != 1 {
		t.Errorf("Worst = %d, want 1 (Monday)", bd.Worst)
	}
}

func TestBreakdown_TieBreaksOnLowestIndex(t *testing.T) {
	// Nothing completed: all rates are 0 and both best and worst stay at the
	// first-encountered weekday index.
	h := newHabit(t, recurrence.Daily, nil)
	bd, err := Breakdown(h, "2024-01-07", "2024-01-13")
	if err != nil {
		t.Fatalf("Breakdown failed: %v", err)
	}
	if bd.Best != 0 || bd.Worst != 0 {
		t.Errorf("Best/Worst = %d/%d, want 0/0 on all-tie", bd.Best, bd.Worst)
	}
}

func TestAverageCompletionsPerWeek(t *testing.T) {
	tests := []struct {
		name  string
		total int
		start string
		end   string
		want  float64
	}{
		{name: "two weeks", total: 14, start: "2024-01-01", end: "2024-01-15", want: 7},
		{name: "partial week rounds up", total: 8, start: "2024-01-01", end: "2024-01-09", want: 4},
		{name: "zero-week window", total: 5, start: "2024-01-01", end: "2024-01-01", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AverageCompletionsPerWeek(tt.total, tt.start, tt.end)
			if err != nil {
				t.Fatalf("AverageCompletionsPerWeek failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("AverageCompletionsPerWeek = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	h := newHabit(t, recurrence.Daily, nil,
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05")

	sum, err := Summarize(h, "2024-01-01", "2024-01-05", "2024-01-05")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if sum.SuccessRate != 0.8 {
		t.Errorf("SuccessRate = %v, want 0.8", sum.SuccessRate)
	}
	if sum.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", sum.LongestStreak)
	}
	if sum.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", sum.CurrentStreak)
	}
	if sum.TotalCompletions != 4 {
		t.Errorf("TotalCompletions = %d, want 4", sum.TotalCompletions)
	}
}

func TestSummarize_WindowScopesCompletions(t *testing.T) {
	h := newHabit(t, recurrence.Daily, nil,
		"2023-12-01", "2024-01-02", "2024-01-03")

	sum, err := Summarize(h, "2024-01-01", "2024-01-07", "2024-01-07")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.TotalCompletions != 2 {
		t.Errorf("TotalCompletions = %d, want 2 (outside-window completion excluded)", sum.TotalCompletions)
	}
}
