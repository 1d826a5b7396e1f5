// Package migrations ships the versioned schema migrations embedded in the
// binary, one subtree per storage backend.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

// SQLite returns the SQLite migration files as a flat filesystem.
func SQLite() (fs.FS, error) {
	return fs.Sub(sqliteFS, "sqlite")
}

// Postgres returns the PostgreSQL migration files as a flat filesystem.
func Postgres() (fs.FS, error) {
	return fs.Sub(postgresFS, "postgres")
}
