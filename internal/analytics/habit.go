package analytics

import (
	"math"

	"github.com/julianstephens/tend/internal/dateutil"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/recurrence"
	"github.com/julianstephens/tend/internal/streak"
)

// DayOfWeekStat accumulates due/completed observations for one weekday.
type DayOfWeekStat struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

// DayOfWeekBreakdown holds per-weekday success stats. Days is indexed
// 0=Sunday..6=Saturday. Best and Worst are weekday indices; ties resolve to
// the lowest index under a left fold.
type DayOfWeekBreakdown struct {
	Days  [7]DayOfWeekStat `json:"days"`
	Best  int              `json:"bestDayOfWeek"`
	Worst int              `json:"worstDayOfWeek"`
}

// HabitSummary is the per-habit analytics record over a date window.
type HabitSummary struct {
	HabitID                   string  `json:"habitId"`
	SuccessRate               float64 `json:"successRate"`
	BestDayOfWeek             int     `json:"bestDayOfWeek"`
	WorstDayOfWeek            int     `json:"worstDayOfWeek"`
	LongestStreak             int     `json:"longestStreak"`
	CurrentStreak             int     `json:"currentStreak"`
	TotalCompletions          int     `json:"totalCompletions"`
	AverageCompletionsPerWeek float64 `json:"averageCompletionsPerWeek"`
}

// SuccessRate returns the fraction of due dates in the inclusive window on
// which the habit was completed. It is 0 when no date in the window is due,
// never NaN.
func SuccessRate(habit *models.Habit, start, end string) (float64, error) {
	dates, err := dateutil.DateRange(start, end)
	if err != nil {
		return 0, err
	}

	rule := habit.Rule()
	led := habit.Ledger()

	due, completed := 0, 0
	for _, d := range dates {
		isDue, err := recurrence.IsDue(d, rule)
		if err != nil {
			return 0, err
		}
		if !isDue {
			continue
		}
		due++
		if led.Contains(d) {
			completed++
		}
	}

	if due == 0 {
		return 0, nil
	}
	return float64(completed) / float64(due), nil
}

// Breakdown accumulates due/completed observations per weekday over the
// window and picks the best and worst weekdays by success rate.
func Breakdown(habit *models.Habit, start, end string) (DayOfWeekBreakdown, error) {
	var bd DayOfWeekBreakdown

	dates, err := dateutil.DateRange(start, end)
	if err != nil {
		return bd, err
	}

	rule := habit.Rule()
	led := habit.Ledger()

	for _, d := range dates {
		isDue, err := recurrence.IsDue(d, rule)
		if err != nil {
			return bd, err
		}
		if !isDue {
			continue
		}
		wd, err := dateutil.Weekday(d)
		if err != nil {
			return bd, err
		}
		bd.Days[wd].Total++
		if led.Contains(d) {
			bd.Days[wd].Completed++
		}
	}

	for i := range bd.Days {
		if bd.Days[i].Total > 0 {
			bd.Days[i].Rate = float64(bd.Days[i].Completed) / float64(bd.Days[i].Total)
		}
	}

	// Left fold with strict comparison keeps ties on the lowest index.
	for i := 1; i < len(bd.Days); i++ {
		if bd.Days[i].Rate > bd.Days[bd.Best].Rate {
			bd.Best = i
		}
		if bd.Days[i].Rate < bd.Days[bd.Worst].Rate {
			bd.Worst = i
		}
	}
	return bd, nil
}

// AverageCompletionsPerWeek divides total completions by the number of whole
// or partial weeks in the window. A zero-week window yields 0.
func AverageCompletionsPerWeek(totalCompletions int, start, end string) (float64, error) {
	days, err := dateutil.DaysBetween(start, end)
	if err != nil {
		return 0, err
	}
	weeks := int(math.Ceil(float64(days) / 7))
	if weeks <= 0 {
		return 0, nil
	}
	return float64(totalCompletions) / float64(weeks), nil
}

// Summarize computes the full per-habit analytics record over a window.
func Summarize(habit *models.Habit, start, end, today string) (HabitSummary, error) {
	rate, err := SuccessRate(habit, start, end)
	if err != nil {
		return HabitSummary{}, err
	}
	bd, err := Breakdown(habit, start, end)
	if err != nil {
		return HabitSummary{}, err
	}

	led := habit.Ledger()
	rule := habit.Rule()

	total := 0
	for _, d := range led.Dates() {
		within, err := inWindow(d, start, end)
		if err != nil {
			return HabitSummary{}, err
		}
		if within {
			total++
		}
	}

	avg, err := AverageCompletionsPerWeek(total, start, end)
	if err != nil {
		return HabitSummary{}, err
	}

	return HabitSummary{
		HabitID:                   habit.ID,
		SuccessRate:               rate,
		BestDayOfWeek:             bd.Best,
		WorstDayOfWeek:            bd.Worst,
		LongestStreak:             streak.Best(led, rule, habit.BestStreak),
		CurrentStreak:             streak.Current(led, rule, today),
		TotalCompletions:          total,
		AverageCompletionsPerWeek: avg,
	}, nil
}

func inWindow(date, start, end string) (bool, error) {
	fromStart, err := dateutil.DaysBetween(start, date)
	if err != nil {
		return false, err
	}
	toEnd, err := dateutil.DaysBetween(date, end)
	if err != nil {
		return false, err
	}
	return fromStart >= 0 && toEnd >= 0, nil
}
