package models

import "time"

// JournalNote is a dated journal entry. A user has at most one note per
// calendar day.
type JournalNote struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Day               string     `json:"day"` // YYYY-MM-DD format
	Content           string     `json:"content"`
	Mood              string     `json:"mood,omitempty"`
	ProductivityLevel string     `json:"productivity_level,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// LabelOption maps a user-configurable label to the numeric value used when
// averaging moods or productivity levels. A note whose label no longer exists
// in the user's current option set still counts toward distributions but is
// excluded from numeric averages.
type LabelOption struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// UserOptions holds a user's configured mood and productivity level options.
type UserOptions struct {
	UserID             string        `json:"user_id"`
	Moods              []LabelOption `json:"moods"`
	ProductivityLevels []LabelOption `json:"productivity_levels"`
}

// MoodValues returns the label to value lookup for moods.
func (o UserOptions) MoodValues() map[string]float64 {
	return optionMap(o.Moods)
}

// ProductivityValues returns the label to value lookup for productivity levels.
func (o UserOptions) ProductivityValues() map[string]float64 {
	return optionMap(o.ProductivityLevels)
}

func optionMap(opts []LabelOption) map[string]float64 {
	m := make(map[string]float64, len(opts))
	for _, o := range opts {
		m[o.Label] = o.Value
	}
	return m
}
