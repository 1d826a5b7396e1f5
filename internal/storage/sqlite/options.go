package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/storage"
)

func (s *Store) GetOptions(userID string) (models.UserOptions, error) {
	row := s.db.QueryRow(`
		SELECT moods, productivity_levels FROM user_options WHERE user_id = ?`,
		userID)

	var moods, levels string
	if err := row.Scan(&moods, &levels); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserOptions{}, fmt.Errorf("options for user %s: %w", userID, storage.ErrNotFound)
		}
		return models.UserOptions{}, err
	}

	opts := models.UserOptions{UserID: userID}
	if err := json.Unmarshal([]byte(moods), &opts.Moods); err != nil {
		return models.UserOptions{}, fmt.Errorf("failed to parse moods for user %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(levels), &opts.ProductivityLevels); err != nil {
		return models.UserOptions{}, fmt.Errorf("failed to parse productivity_levels for user %s: %w", userID, err)
	}
	return opts, nil
}

func (s *Store) SaveOptions(opts models.UserOptions) error {
	moods, err := json.Marshal(opts.Moods)
	if err != nil {
		return fmt.Errorf("failed to serialize moods: %w", err)
	}
	levels, err := json.Marshal(opts.ProductivityLevels)
	if err != nil {
		return fmt.Errorf("failed to serialize productivity_levels: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO user_options (user_id, moods, productivity_levels)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			moods = excluded.moods,
			productivity_levels = excluded.productivity_levels`,
		opts.UserID, string(moods), string(levels))
	return err
}
