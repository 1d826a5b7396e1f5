package analytics

import (
	"testing"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/recurrence"
)

func TestOverview(t *testing.T) {
	reader := newHabit(t, recurrence.Daily, nil,
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-06", "2024-01-07")
	reader.ID = "reader"
	reader.Name = "Read"

	runner := newHabit(t, recurrence.Daily, nil, "2024-01-01", "2024-01-04")
	runner.ID = "runner"
	runner.Name = "Run"

	inactive := newHabit(t, recurrence.Daily, nil, "2024-01-01")
	inactive.ID = "inactive"
	inactive.Name = "Old"
	inactive.IsActive = false

	report, err := Overview([]models.Habit{*reader, *runner, *inactive},
		"2024-01-01", "2024-01-07", "2024-01-07")
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if report.TotalHabits != 3 {
		t.Errorf("TotalHabits = %d, want 3", report.TotalHabits)
	}
	if report.ActiveHabits != 2 {
		t.Errorf("ActiveHabits = %d, want 2 (inactive excluded)", report.ActiveHabits)
	}

	// 9 completions over 14 due observations across the two active habits.
	if got := report.CompletionRate; got < 0.642 || got > 0.643 {
		t.Errorf("CompletionRate = %v, want ~9/14", got)
	}
	if report.TotalCompletions != 9 {
		t.Errorf("TotalCompletions = %d, want 9", report.TotalCompletions)
	}

	if len(report.MostConsistent) != 2 {
		t.Fatalf("MostConsistent length = %d, want 2", len(report.MostConsistent))
	}
	if report.MostConsistent[0].HabitID != "reader" {
		t.Errorf("top ranked = %s, want reader", report.MostConsistent[0].HabitID)
	}

	if report.LongestStreak == nil || report.LongestStreak.HabitID != "reader" || report.LongestStreak.Streak != 7 {
		t.Errorf("LongestStreak = %+v, want reader with 7", report.LongestStreak)
	}
}

func TestOverview_Buckets(t *testing.T) {
	h := newHabit(t, recurrence.Daily, nil,
		"2024-01-30", "2024-01-31", "2024-02-01")

	report, err := Overview([]models.Habit{*h}, "2024-01-29", "2024-02-04", "2024-02-04")
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if len(report.MonthlyFrequency) != 2 {
		t.Fatalf("MonthlyFrequency = %+v, want january and february buckets", report.MonthlyFrequency)
	}
	jan := report.MonthlyFrequency[0]
	if jan.Bucket != "2024-01" || jan.Due != 3 || jan.Completed != 2 {
		t.Errorf("january bucket = %+v, want 2/3 completed", jan)
	}
	feb := report.MonthlyFrequency[1]
	if feb.Bucket != "2024-02" || feb.Due != 4 || feb.Completed != 1 {
		t.Errorf("february bucket = %+v, want 1/4 completed", feb)
	}

	// Jan 29 2024 through Feb 4 2024 is a single ISO week.
	if len(report.WeeklyFrequency) != 1 {
		t.Fatalf("WeeklyFrequency = %+v, want one bucket", report.WeeklyFrequency)
	}
	wk := report.WeeklyFrequency[0]
	if wk.Bucket != "2024-W05" || wk.Due != 7 || wk.Completed != 3 {
		t.Errorf("week bucket = %+v, want 3/7 in 2024-W05", wk)
	}
}

func TestOverview_NoHabits(t *testing.T) {
	report, err := Overview(nil, "2024-01-01", "2024-01-07", "2024-01-07")
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if report.CompletionRate != 0 || report.LongestStreak != nil {
		t.Errorf("empty overview = %+v, want zero values", report)
	}
}
