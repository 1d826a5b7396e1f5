package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/recurrence"
	"github.com/julianstephens/tend/internal/storage"
)

const habitColumns = `id, user_id, name, tag, description, motivation_note,
	repetition, specific_days, goal_value, current_streak, best_streak,
	current_counter, completed_days, is_active, sort_order,
	created_at, updated_at, deleted_at`

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanHabit(row.Scan, id)
}

func (s *Store) GetHabitsForUser(userID string, includeInactive, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE user_id = $1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeInactive {
		query += " AND is_active"
	}
	query += " ORDER BY sort_order, created_at"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]models.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows.Scan, userID)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	specificDays, err := json.Marshal(habit.SpecificDays)
	if err != nil {
		return fmt.Errorf("failed to serialize specific_days: %w", err)
	}
	completedDays, err := json.Marshal(habit.CompletedDays)
	if err != nil {
		return fmt.Errorf("failed to serialize completed_days: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			tag = excluded.tag,
			description = excluded.description,
			motivation_note = excluded.motivation_note,
			repetition = excluded.repetition,
			specific_days = excluded.specific_days,
			goal_value = excluded.goal_value,
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			current_counter = excluded.current_counter,
			completed_days = excluded.completed_days,
			is_active = excluded.is_active,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.UserID, habit.Name, habit.Tag, habit.Description,
		habit.MotivationNote, string(habit.Repetition), string(specificDays),
		habit.GoalValue, habit.CurrentStreak, habit.BestStreak,
		habit.CurrentCounter, string(completedDays), habit.IsActive, habit.Order,
		habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339),
		nullTime(habit.DeletedAt))

	return err
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("habit %s", id))
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("habit %s", id))
}

func (s *Store) MutateHabitLedger(id string, fn func(*models.Habit) error) (models.Habit, error) {
	mu := s.habitLock(id)
	mu.Lock()
	defer mu.Unlock()

	habit, err := s.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	if err := fn(&habit); err != nil {
		return models.Habit{}, err
	}
	habit.UpdatedAt = time.Now().UTC()

	if err := s.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func scanHabit(scan func(...any) error, ref string) (models.Habit, error) {
	var h models.Habit
	var repetition, specificDays, completedDays string
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := scan(&h.ID, &h.UserID, &h.Name, &h.Tag, &h.Description,
		&h.MotivationNote, &repetition, &specificDays, &h.GoalValue,
		&h.CurrentStreak, &h.BestStreak, &h.CurrentCounter, &completedDays,
		&h.IsActive, &h.Order, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("habit %s: %w", ref, storage.ErrNotFound)
		}
		return models.Habit{}, err
	}

	h.Repetition = recurrence.Repetition(repetition)
	if err := json.Unmarshal([]byte(specificDays), &h.SpecificDays); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse specific_days for habit %s: %w", h.ID, err)
	}
	if err := json.Unmarshal([]byte(completedDays), &h.CompletedDays); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse completed_days for habit %s: %w", h.ID, err)
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %s: %w", h.ID, err)
		}
		h.DeletedAt = &t
	}

	return h, nil
}
