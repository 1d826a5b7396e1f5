package analytics

import (
	"sort"

	"github.com/julianstephens/tend/internal/dateutil"
	"github.com/julianstephens/tend/internal/models"
)

// ContentLengthStats summarizes journal note content lengths in characters.
type ContentLengthStats struct {
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
	Total   int     `json:"total"`
}

// JournalReport combines a user's journal notes with their mood and
// productivity option sets.
type JournalReport struct {
	TotalNotes               int                `json:"totalNotes"`
	MoodDistribution         map[string]int     `json:"moodDistribution"`
	ProductivityDistribution map[string]int     `json:"productivityDistribution"`
	MonthlyMood              map[string]float64 `json:"monthlyMood"`
	MonthlyProductivity      map[string]float64 `json:"monthlyProductivity"`
	ContentLength            ContentLengthStats `json:"contentLength"`
	LongestStreak            int                `json:"longestStreak"`
}

// CorrelationReport compares mean note productivity between days a habit was
// completed and days it was not. The averages and impact are absent, not
// zero, when either partition is empty.
type CorrelationReport struct {
	HabitID               string   `json:"habitId"`
	HabitName             string   `json:"habitName"`
	DaysWithCompletion    int      `json:"daysWithCompletion"`
	DaysWithoutCompletion int      `json:"daysWithoutCompletion"`
	AvgWithCompletion     *float64 `json:"avgProductivityWithCompletion"`
	AvgWithoutCompletion  *float64 `json:"avgProductivityWithoutCompletion"`
	ProductivityImpact    *float64 `json:"productivityImpact"`
}

// Journal computes distributions, monthly averages, content-length statistics
// and the longest run of consecutive noted days. Mood and productivity labels
// always count toward distributions; labels missing from the user's current
// option set are excluded from the numeric averages only. The longest-streak
// computation here is plain daily adjacency, deliberately not cadence-aware
// like habit streaks.
func Journal(notes []models.JournalNote, opts models.UserOptions) JournalReport {
	report := JournalReport{
		MoodDistribution:         make(map[string]int),
		ProductivityDistribution: make(map[string]int),
		MonthlyMood:              make(map[string]float64),
		MonthlyProductivity:      make(map[string]float64),
	}
	if len(notes) == 0 {
		return report
	}

	moodValues := opts.MoodValues()
	prodValues := opts.ProductivityValues()

	type monthAcc struct {
		sum   float64
		count int
	}
	moodByMonth := make(map[string]*monthAcc)
	prodByMonth := make(map[string]*monthAcc)

	report.TotalNotes = len(notes)
	report.ContentLength.Min = len(notes[0].Content)

	days := make([]string, 0, len(notes))
	for _, n := range notes {
		days = append(days, n.Day)

		length := len(n.Content)
		report.ContentLength.Total += length
		if length < report.ContentLength.Min {
			report.ContentLength.Min = length
		}
		if length > report.ContentLength.Max {
			report.ContentLength.Max = length
		}

		month := monthBucket(n.Day)

		if n.Mood != "" {
			report.MoodDistribution[n.Mood]++
			if v, ok := moodValues[n.Mood]; ok {
				acc := moodByMonth[month]
				if acc == nil {
					acc = &monthAcc{}
					moodByMonth[month] = acc
				}
				acc.sum += v
				acc.count++
			}
		}
		if n.ProductivityLevel != "" {
			report.ProductivityDistribution[n.ProductivityLevel]++
			if v, ok := prodValues[n.ProductivityLevel]; ok {
				acc := prodByMonth[month]
				if acc == nil {
					acc = &monthAcc{}
					prodByMonth[month] = acc
				}
				acc.sum += v
				acc.count++
			}
		}
	}

	report.ContentLength.Average = float64(report.ContentLength.Total) / float64(len(notes))

	for month, acc := range moodByMonth {
		report.MonthlyMood[month] = acc.sum / float64(acc.count)
	}
	for month, acc := range prodByMonth {
		report.MonthlyProductivity[month] = acc.sum / float64(acc.count)
	}

	report.LongestStreak = longestDailyRun(days)
	return report
}

// Correlate partitions dates carrying a productivity-tagged note by whether
// the habit was completed that day and compares the partition means.
func Correlate(habit *models.Habit, notes []models.JournalNote, opts models.UserOptions) CorrelationReport {
	report := CorrelationReport{HabitID: habit.ID, HabitName: habit.Name}

	prodValues := opts.ProductivityValues()
	led := habit.Ledger()

	var withSum, withoutSum float64
	for _, n := range notes {
		v, ok := prodValues[n.ProductivityLevel]
		if !ok {
			continue
		}
		if led.Contains(n.Day) {
			report.DaysWithCompletion++
			withSum += v
		} else {
			report.DaysWithoutCompletion++
			withoutSum += v
		}
	}

	if report.DaysWithCompletion == 0 || report.DaysWithoutCompletion == 0 {
		return report
	}

	with := withSum / float64(report.DaysWithCompletion)
	without := withoutSum / float64(report.DaysWithoutCompletion)
	impact := with - without
	report.AvgWithCompletion = &with
	report.AvgWithoutCompletion = &without
	report.ProductivityImpact = &impact
	return report
}

// longestDailyRun returns the longest run of consecutive calendar days in the
// given set of dates. Duplicates are ignored; malformed dates break runs.
func longestDailyRun(days []string) int {
	if len(days) == 0 {
		return 0
	}

	uniq := make(map[string]struct{}, len(days))
	for _, d := range days {
		uniq[d] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for d := range uniq {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		gap, err := dateutil.DaysBetween(sorted[i-1], sorted[i])
		if err == nil && gap == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}
