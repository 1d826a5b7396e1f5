package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/storage"
)

const noteColumns = `id, user_id, day, content, mood, productivity_level,
	created_at, updated_at, deleted_at`

func (s *Store) SaveNote(note models.JournalNote) error {
	_, err := s.db.Exec(`
		INSERT INTO journal_notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			id = excluded.id,
			content = excluded.content,
			mood = excluded.mood,
			productivity_level = excluded.productivity_level,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		note.ID, note.UserID, note.Day, note.Content,
		note.Mood, note.ProductivityLevel,
		note.CreatedAt.Format(time.RFC3339), note.UpdatedAt.Format(time.RFC3339),
		nullTime(note.DeletedAt))
	return err
}

func (s *Store) GetNote(userID, day string) (models.JournalNote, error) {
	row := s.db.QueryRow(`
		SELECT `+noteColumns+`
		FROM journal_notes
		WHERE user_id = ? AND day = ? AND deleted_at IS NULL`, userID, day)
	return scanNote(row.Scan, day)
}

func (s *Store) GetNotes(userID, startDay, endDay string) ([]models.JournalNote, error) {
	rows, err := s.db.Query(`
		SELECT `+noteColumns+`
		FROM journal_notes
		WHERE user_id = ? AND day >= ? AND day <= ? AND deleted_at IS NULL
		ORDER BY day`, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.JournalNote, 0)
	for rows.Next() {
		n, err := scanNote(rows.Scan, userID)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) DeleteNote(userID, day string) error {
	result, err := s.db.Exec(`
		UPDATE journal_notes SET deleted_at = ?
		WHERE user_id = ? AND day = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), userID, day)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("note for %s", day))
}

func scanNote(scan func(...any) error, ref string) (models.JournalNote, error) {
	var n models.JournalNote
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := scan(&n.ID, &n.UserID, &n.Day, &n.Content, &n.Mood,
		&n.ProductivityLevel, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalNote{}, fmt.Errorf("note for %s: %w", ref, storage.ErrNotFound)
		}
		return models.JournalNote{}, err
	}

	n.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.JournalNote{}, fmt.Errorf("failed to parse created_at for note %s: %w", n.ID, err)
	}
	n.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.JournalNote{}, fmt.Errorf("failed to parse updated_at for note %s: %w", n.ID, err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.JournalNote{}, fmt.Errorf("failed to parse deleted_at for note %s: %w", n.ID, err)
		}
		n.DeletedAt = &t
	}

	return n, nil
}
