package recurrence

import (
	"fmt"

	"github.com/julianstephens/tend/internal/constants"
	"github.com/julianstephens/tend/internal/dateutil"
)

// Repetition is the recurrence cadence of a habit.
type Repetition string

const (
	Daily   Repetition = constants.RepetitionDaily
	Weekly  Repetition = constants.RepetitionWeekly
	Monthly Repetition = constants.RepetitionMonthly
)

// Valid reports whether the repetition is one of the known cadences.
func (r Repetition) Valid() bool {
	switch r {
	case Daily, Weekly, Monthly:
		return true
	default:
		return false
	}
}

// Rule is a habit's recurrence rule. SpecificDays holds weekday indices
// (0=Sunday..6=Saturday) for weekly habits and day-of-month numbers (1-31) for
// monthly habits. An empty set means the habit is due every day regardless of
// cadence; weekly and monthly habits without explicit days degrade to daily
// evaluation.
type Rule struct {
	Repetition   Repetition `json:"repetition"`
	SpecificDays []int      `json:"specific_days,omitempty"`
}

// Validate checks that the rule's repetition and day set are well-formed.
func (r Rule) Validate() error {
	if !r.Repetition.Valid() {
		return fmt.Errorf("invalid repetition %q", r.Repetition)
	}
	for _, d := range r.SpecificDays {
		switch r.Repetition {
		case Weekly:
			if d < 0 || d > 6 {
				return fmt.Errorf("invalid weekday index %d, must be 0-6", d)
			}
		case Monthly:
			if d < 1 || d > 31 {
				return fmt.Errorf("invalid day of month %d, must be 1-31", d)
			}
		}
	}
	return nil
}

// IsDue reports whether a habit with the given rule was expected to be
// performed on the given date. The result depends only on the inputs, which
// keeps streak computation deterministic.
func IsDue(date string, rule Rule) (bool, error) {
	switch rule.Repetition {
	case Daily:
		return true, nil
	case Weekly:
		if len(rule.SpecificDays) == 0 {
			return true, nil
		}
		wd, err := dateutil.Weekday(date)
		if err != nil {
			return false, err
		}
		return containsDay(rule.SpecificDays, wd), nil
	case Monthly:
		if len(rule.SpecificDays) == 0 {
			return true, nil
		}
		dom, err := dateutil.DayOfMonth(date)
		if err != nil {
			return false, err
		}
		return containsDay(rule.SpecificDays, dom), nil
	default:
		return false, fmt.Errorf("invalid repetition %q", rule.Repetition)
	}
}

// GapThreshold returns the maximum day gap between consecutive completions
// that keeps a streak alive for the given cadence. These are fixed cadence
// windows, not derived from a rule's specific days.
func GapThreshold(rep Repetition) int {
	switch rep {
	case Weekly:
		return 7
	case Monthly:
		return 31
	default:
		return 1
	}
}

func containsDay(days []int, d int) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}
