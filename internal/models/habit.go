package models

import (
	"time"

	"github.com/julianstephens/tend/internal/ledger"
	"github.com/julianstephens/tend/internal/recurrence"
)

// Habit is a recurring practice owned by exactly one user. CompletedDays is
// the single source of truth for completion history; CurrentStreak, BestStreak
// and CurrentCounter are a cached materialized view of it, recomputed after
// every ledger mutation and never accepted from clients.
type Habit struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	Name           string                `json:"name"`
	Tag            string                `json:"tag,omitempty"`
	Description    string                `json:"description,omitempty"`
	MotivationNote string                `json:"motivation_note,omitempty"`
	Repetition     recurrence.Repetition `json:"repetition"`
	SpecificDays   []int                 `json:"specific_days,omitempty"`
	GoalValue      float64               `json:"goal_value,omitempty"`
	CurrentStreak  int                   `json:"current_streak"`
	BestStreak     int                   `json:"best_streak"`
	CurrentCounter int                   `json:"current_counter"`
	CompletedDays  []int                 `json:"completed_days"` // encoded YYYYMMDD, sorted
	IsActive       bool                  `json:"is_active"`
	Order          int                   `json:"order,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	DeletedAt      *time.Time            `json:"deleted_at,omitempty"`
}

// Rule returns the habit's recurrence rule.
func (h *Habit) Rule() recurrence.Rule {
	return recurrence.Rule{Repetition: h.Repetition, SpecificDays: h.SpecificDays}
}

// Ledger materializes the habit's completion ledger from its stored encoded
// days.
func (h *Habit) Ledger() *ledger.Ledger {
	return ledger.FromEncoded(h.CompletedDays)
}
