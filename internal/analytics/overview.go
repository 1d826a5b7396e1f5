package analytics

import (
	"fmt"
	"sort"

	"github.com/julianstephens/tend/internal/dateutil"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/recurrence"
	"github.com/julianstephens/tend/internal/streak"
)

// HabitRanking is one entry in the most-consistent-habits ranking.
type HabitRanking struct {
	HabitID     string  `json:"habitId"`
	Name        string  `json:"name"`
	SuccessRate float64 `json:"successRate"`
}

// StreakLeader identifies the habit holding the longest streak.
type StreakLeader struct {
	HabitID string `json:"habitId"`
	Name    string `json:"name"`
	Streak  int    `json:"streak"`
}

// BucketStat is one time bucket (ISO week or calendar month) of cross-habit
// due/completed counts.
type BucketStat struct {
	Bucket    string  `json:"bucket"`
	Due       int     `json:"due"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"completionRate"`
}

// OverviewReport combines analytics across a user's active habits.
type OverviewReport struct {
	TotalHabits      int                `json:"totalHabits"`
	ActiveHabits     int                `json:"activeHabits"`
	TotalCompletions int                `json:"totalCompletions"`
	CompletionRate   float64            `json:"completionRate"`
	MostConsistent   []HabitRanking     `json:"mostConsistent"`
	LongestStreak    *StreakLeader      `json:"longestStreak,omitempty"`
	DayOfWeek        DayOfWeekBreakdown `json:"dayOfWeek"`
	WeeklyFrequency  []BucketStat       `json:"weeklyFrequency"`
	MonthlyFrequency []BucketStat       `json:"monthlyFrequency"`
}

// Overview aggregates per-habit analytics across the user's habits over a
// window. Inactive habits are counted in TotalHabits but excluded from every
// aggregate.
func Overview(habits []models.Habit, start, end, today string) (OverviewReport, error) {
	report := OverviewReport{TotalHabits: len(habits)}

	dates, err := dateutil.DateRange(start, end)
	if err != nil {
		return report, err
	}

	weekly := make(map[string]*BucketStat)
	monthly := make(map[string]*BucketStat)
	var weeklyOrder, monthlyOrder []string

	totalDue, totalCompleted := 0, 0

	for i := range habits {
		h := &habits[i]
		if !h.IsActive {
			continue
		}
		report.ActiveHabits++

		rule := h.Rule()
		led := h.Ledger()

		rate, err := SuccessRate(h, start, end)
		if err != nil {
			return report, err
		}
		report.MostConsistent = append(report.MostConsistent, HabitRanking{
			HabitID:     h.ID,
			Name:        h.Name,
			SuccessRate: rate,
		})

		current := streak.Current(led, rule, today)
		if report.LongestStreak == nil || current > report.LongestStreak.Streak {
			report.LongestStreak = &StreakLeader{HabitID: h.ID, Name: h.Name, Streak: current}
		}

		for _, d := range dates {
			isDue, err := recurrence.IsDue(d, rule)
			if err != nil {
				return report, err
			}
			if !isDue {
				continue
			}
			completed := led.Contains(d)

			totalDue++
			wd, err := dateutil.Weekday(d)
			if err != nil {
				return report, err
			}
			report.DayOfWeek.Days[wd].Total++

			wk := weekBucket(d)
			mo := monthBucket(d)
			if _, ok := weekly[wk]; !ok {
				weekly[wk] = &BucketStat{Bucket: wk}
				weeklyOrder = append(weeklyOrder, wk)
			}
			if _, ok := monthly[mo]; !ok {
				monthly[mo] = &BucketStat{Bucket: mo}
				monthlyOrder = append(monthlyOrder, mo)
			}
			weekly[wk].Due++
			monthly[mo].Due++

			if completed {
				totalCompleted++
				report.DayOfWeek.Days[wd].Completed++
				weekly[wk].Completed++
				monthly[mo].Completed++
			}
		}

		report.TotalCompletions += led.Len()
	}

	if totalDue > 0 {
		report.CompletionRate = float64(totalCompleted) / float64(totalDue)
	}

	for i := range report.DayOfWeek.Days {
		if report.DayOfWeek.Days[i].Total > 0 {
			report.DayOfWeek.Days[i].Rate =
				float64(report.DayOfWeek.Days[i].Completed) / float64(report.DayOfWeek.Days[i].Total)
		}
	}
	for i := 1; i < len(report.DayOfWeek.Days); i++ {
		if report.DayOfWeek.Days[i].Rate > report.DayOfWeek.Days[report.DayOfWeek.Best].Rate {
			report.DayOfWeek.Best = i
		}
		if report.DayOfWeek.Days[i].Rate < report.DayOfWeek.Days[report.DayOfWeek.Worst].Rate {
			report.DayOfWeek.Worst = i
		}
	}

	// Rankings sort by success rate descending; equal rates keep insertion
	// order via stable sort.
	sort.SliceStable(report.MostConsistent, func(i, j int) bool {
		return report.MostConsistent[i].SuccessRate > report.MostConsistent[j].SuccessRate
	})

	for _, k := range weeklyOrder {
		report.WeeklyFrequency = append(report.WeeklyFrequency, *weekly[k])
	}
	for _, k := range monthlyOrder {
		report.MonthlyFrequency = append(report.MonthlyFrequency, *monthly[k])
	}
	for i := range report.WeeklyFrequency {
		b := &report.WeeklyFrequency[i]
		if b.Due > 0 {
			b.Rate = float64(b.Completed) / float64(b.Due)
		}
	}
	for i := range report.MonthlyFrequency {
		b := &report.MonthlyFrequency[i]
		if b.Due > 0 {
			b.Rate = float64(b.Completed) / float64(b.Due)
		}
	}

	return report, nil
}

func weekBucket(date string) string {
	t, err := dateutil.Parse(date)
	if err != nil {
		return ""
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthBucket(date string) string {
	// YYYY-MM prefix of a valid YYYY-MM-DD date
	return date[:7]
}
