package streak

import (
	"github.com/julianstephens/tend/internal/dateutil"
	"github.com/julianstephens/tend/internal/ledger"
	"github.com/julianstephens/tend/internal/recurrence"
)

// Result is the derived streak trio cached on a habit. It is a materialized
// view of the ledger: recomputed and persisted after every ledger mutation,
// never accepted from callers.
type Result struct {
	CurrentStreak  int `json:"current_streak"`
	BestStreak     int `json:"best_streak"`
	CurrentCounter int `json:"current_counter"`
}

// Current computes the length of the still-alive streak as of today. A streak
// is alive while the gap between today and the latest completion, and between
// each consecutive pair of completions, stays within the cadence threshold
// (1/7/31 days for daily/weekly/monthly).
func Current(led *ledger.Ledger, rule recurrence.Rule, today string) int {
	if led.Len() == 0 {
		return 0
	}
	threshold := recurrence.GapThreshold(rule.Repetition)

	gap, err := dateutil.DaysBetween(led.Latest(), today)
	if err != nil || gap > threshold {
		return 0
	}

	dates := led.Dates()
	count := 1
	for i := len(dates) - 1; i > 0; i-- {
		gap, err := dateutil.DaysBetween(dates[i-1], dates[i])
		if err != nil || gap > threshold {
			break
		}
		count++
	}
	return count
}

// Runs returns the length of every maximal streak run in the ledger, in
// chronological order. A run ends whenever the day gap to the next completion
// exceeds the cadence threshold. In the embedded-set model there are no
// explicit not-completed entries, so gaps are the only break condition.
func Runs(led *ledger.Ledger, rule recurrence.Rule) []int {
	dates := led.Dates()
	if len(dates) == 0 {
		return nil
	}
	threshold := recurrence.GapThreshold(rule.Repetition)

	var runs []int
	run := 1
	for i := 1; i < len(dates); i++ {
		gap, err := dateutil.DaysBetween(dates[i-1], dates[i])
		if err == nil && gap <= threshold {
			run++
			continue
		}
		runs = append(runs, run)
		run = 1
	}
	runs = append(runs, run)
	return runs
}

// Best returns the habit's best streak, never less than a previously recorded
// best. The stored best survives even if historical completions are later
// pruned from the ledger.
func Best(led *ledger.Ledger, rule recurrence.Rule, existingBest int) int {
	best := existingBest
	if best < 0 {
		best = 0
	}
	for _, run := range Runs(led, rule) {
		if run > best {
			best = run
		}
	}
	return best
}

// Recompute derives the full streak trio from a ledger. CurrentCounter is the
// total number of completions on record.
func Recompute(led *ledger.Ledger, rule recurrence.Rule, today string, existingBest int) Result {
	current := Current(led, rule, today)
	best := Best(led, rule, existingBest)
	if current > best {
		best = current
	}
	return Result{
		CurrentStreak:  current,
		BestStreak:     best,
		CurrentCounter: led.Len(),
	}
}
