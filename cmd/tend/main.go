package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tend/internal/cli"
	"github.com/julianstephens/tend/internal/constants"
	"github.com/julianstephens/tend/internal/storage"
	"github.com/julianstephens/tend/internal/storage/postgres"
	"github.com/julianstephens/tend/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Storage string `help:"Storage path or PostgreSQL connection string. A .json path selects the JSON file store. For PostgreSQL, credentials must NOT be embedded in the connection string." default:"${default_storage}"`

	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP API server." default:"1"`
	Init    cli.InitCmd    `cmd:"" help:"Initialize tend storage."`
	Migrate cli.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracking and journaling server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"default_storage": constants.DefaultConfigPath,
		},
	)

	if v := os.Getenv("TEND_STORAGE"); v != "" && CLI.Storage == constants.DefaultConfigPath {
		CLI.Storage = v
	}

	store, err := selectStore(CLI.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:       store,
		StoragePath: CLI.Storage,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// selectStore picks the storage backend from the config string the way the
// path looks: a postgres URL or DSN gets the postgres store, a .json path the
// JSON file store, anything else sqlite.
func selectStore(path string) (storage.Provider, error) {
	if strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://") {
		if valid, err := postgres.ValidateConnString(path); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(path), nil
	}

	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(expanded, ".json") {
		return storage.NewJSONStore(expanded), nil
	}
	return sqlite.NewStore(expanded), nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
