package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/storage"
)

func (s *Store) AddUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339), user.UpdatedAt.Format(time.RFC3339),
		nullTime(user.DeletedAt))
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, name, password_hash, created_at, updated_at, deleted_at
		FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanUser(row, id)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, name, password_hash, created_at, updated_at, deleted_at
		FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
	return scanUser(row, email)
}

func (s *Store) UpdateUser(user models.User) error {
	result, err := s.db.Exec(`
		UPDATE users SET email = $1, name = $2, password_hash = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL`,
		user.Email, user.Name, user.PasswordHash,
		time.Now().UTC().Format(time.RFC3339), user.ID)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("user %s", user.ID))
}

func (s *Store) DeleteUser(id string) error {
	result, err := s.db.Exec(`
		UPDATE users SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("user %s", id))
}

func scanUser(row *sql.Row, ref string) (models.User, error) {
	var u models.User
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", ref, storage.ErrNotFound)
		}
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		u.DeletedAt = &t
	}

	return u, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func requireRow(result sql.Result, ref string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", ref, storage.ErrNotFound)
	}
	return nil
}
