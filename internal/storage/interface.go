package storage

import (
	"errors"

	"github.com/julianstephens/tend/internal/models"
)

// ErrNotFound is wrapped by every backend when a requested record does not
// exist; the API boundary maps it to a 404.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UpdateUser(models.User) error
	DeleteUser(id string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitsForUser(userID string, includeInactive, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error
	// MutateHabitLedger loads the habit, applies fn, and persists the result
	// while serializing against other mutations of the same habit. Completion
	// toggles and the streak recompute they trigger go through here so the
	// cached streak fields can never drift from the ledger.
	MutateHabitLedger(id string, fn func(*models.Habit) error) (models.Habit, error)

	// Journal notes. SaveNote upserts on (user, day); a user keeps at most one
	// note per calendar date.
	SaveNote(models.JournalNote) error
	GetNote(userID, day string) (models.JournalNote, error)
	GetNotes(userID, startDay, endDay string) ([]models.JournalNote, error)
	DeleteNote(userID, day string) error

	// Mood / productivity options
	GetOptions(userID string) (models.UserOptions, error)
	SaveOptions(models.UserOptions) error

	// Utils
	GetConfigPath() string
}
