package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/migration"
	"github.com/julianstephens/tend/migrations"
)

type Store struct {
	path  string
	db    *sql.DB
	locks sync.Map // habit id -> *sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tend init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	_, err := s.Migrate(func(msg string) {
		logger.Info(msg)
	})
	return err
}

// Migrate applies pending schema migrations, opening the database first if
// needed. It returns the number of migrations applied.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return 0, fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	fsys, err := migrations.SQLite()
	if err != nil {
		return 0, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	return migration.NewRunner(s.db, fsys).ApplyMigrations(logFn)
}

func (s *Store) validateSchemaVersion() error {
	fsys, err := migrations.SQLite()
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	return migration.NewRunner(s.db, fsys).ValidateVersion()
}

// habitLock returns the mutex serializing ledger mutations for one habit.
func (s *Store) habitLock(id string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *Store) GetConfigPath() string {
	return s.path
}
