package cli

import (
	"github.com/julianstephens/tend/internal/storage"
)

// Context carries the resolved storage backend into every command.
type Context struct {
	Store       storage.Provider
	StoragePath string
}
