package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/tend/internal/models"
)

type Store struct {
	Version int                           `json:"version"`
	Users   map[string]models.User        `json:"users"`
	Habits  map[string]models.Habit       `json:"habits"`
	Notes   map[string]models.JournalNote `json:"notes"` // keyed userID/day
	Options map[string]models.UserOptions `json:"options"`
}

// JSONStore keeps everything in a single JSON file, loaded into memory and
// rewritten on every mutation. Suitable for single-process deployments.
type JSONStore struct {
	path  string
	mu    sync.Mutex
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = newStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tend init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Users == nil {
		s.store.Users = make(map[string]models.User)
	}
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Notes == nil {
		s.store.Notes = make(map[string]models.JournalNote)
	}
	if s.store.Options == nil {
		s.store.Options = make(map[string]models.UserOptions)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func newStore() *Store {
	return &Store{
		Version: 1,
		Users:   make(map[string]models.User),
		Habits:  make(map[string]models.Habit),
		Notes:   make(map[string]models.JournalNote),
		Options: make(map[string]models.UserOptions),
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// Users

func (s *JSONStore) AddUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	for _, u := range s.store.Users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return fmt.Errorf("user with email %q already exists", user.Email)
		}
	}

	s.store.Users[user.ID] = user
	return s.save()
}

func (s *JSONStore) GetUser(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}

	user, ok := s.store.Users[id]
	if !ok || user.DeletedAt != nil {
		return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *JSONStore) GetUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}

	for _, u := range s.store.Users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

func (s *JSONStore) UpdateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.store.Users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	s.store.Users[user.ID] = user
	return s.save()
}

func (s *JSONStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	user, ok := s.store.Users[id]
	if !ok || user.DeletedAt != nil {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	now := time.Now().UTC()
	user.DeletedAt = &now
	s.store.Users[id] = user
	return s.save()
}

// Habits

func (s *JSONStore) AddHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getHabitLocked(id)
}

func (s *JSONStore) getHabitLocked(id string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return habit, nil
}

func (s *JSONStore) GetHabitsForUser(userID string, includeInactive, includeDeleted bool) ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0)
	for _, h := range s.store.Habits {
		if h.UserID != userID {
			continue
		}
		if h.DeletedAt != nil && !includeDeleted {
			continue
		}
		if !h.IsActive && !includeInactive {
			continue
		}
		habits = append(habits, h)
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].Order != habits[j].Order {
			return habits[i].Order < habits[j].Order
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now().UTC()
	habit.DeletedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) RestoreHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt == nil {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	habit.DeletedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) MutateHabitLedger(id string, fn func(*models.Habit) error) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := s.getHabitLocked(id)
	if err != nil {
		return models.Habit{}, err
	}

	if err := fn(&habit); err != nil {
		return models.Habit{}, err
	}
	habit.UpdatedAt = time.Now().UTC()

	s.store.Habits[id] = habit
	if err := s.save(); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// Journal notes

func noteKey(userID, day string) string {
	return userID + "/" + day
}

func (s *JSONStore) SaveNote(note models.JournalNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Notes[noteKey(note.UserID, note.Day)] = note
	return s.save()
}

func (s *JSONStore) GetNote(userID, day string) (models.JournalNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.JournalNote{}, err
	}

	note, ok := s.store.Notes[noteKey(userID, day)]
	if !ok || note.DeletedAt != nil {
		return models.JournalNote{}, fmt.Errorf("note for %s: %w", day, ErrNotFound)
	}
	return note, nil
}

func (s *JSONStore) GetNotes(userID, startDay, endDay string) ([]models.JournalNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	notes := make([]models.JournalNote, 0)
	for _, n := range s.store.Notes {
		if n.UserID != userID || n.DeletedAt != nil {
			continue
		}
		// Day strings compare correctly in YYYY-MM-DD form
		if n.Day < startDay || n.Day > endDay {
			continue
		}
		notes = append(notes, n)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Day < notes[j].Day
	})
	return notes, nil
}

func (s *JSONStore) DeleteNote(userID, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	key := noteKey(userID, day)
	note, ok := s.store.Notes[key]
	if !ok || note.DeletedAt != nil {
		return fmt.Errorf("note for %s: %w", day, ErrNotFound)
	}

	now := time.Now().UTC()
	note.DeletedAt = &now
	s.store.Notes[key] = note
	return s.save()
}

// Options

func (s *JSONStore) GetOptions(userID string) (models.UserOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.UserOptions{}, err
	}

	opts, ok := s.store.Options[userID]
	if !ok {
		return models.UserOptions{}, fmt.Errorf("options for user %s: %w", userID, ErrNotFound)
	}
	return opts, nil
}

func (s *JSONStore) SaveOptions(opts models.UserOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Options[opts.UserID] = opts
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
