package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/julianstephens/tend/internal/constants"
)

// Config holds the server configuration resolved from the environment.
type Config struct {
	ListenAddr    string
	StoragePath   string
	JWTSecret     string
	TokenTTLHours int
	LogDir        string
	Debug         bool
}

// Load reads an optional .env file and resolves configuration from the
// environment. The JWT secret is required; everything else has a default.
func Load() (Config, error) {
	// Missing .env is fine, the environment may be set by the host
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:    getEnv("TEND_ADDR", constants.DefaultListenAddr),
		StoragePath:   getEnv("TEND_STORAGE", constants.DefaultConfigPath),
		JWTSecret:     os.Getenv("TEND_JWT_SECRET"),
		TokenTTLHours: constants.DefaultTokenTTLHours,
		LogDir:        getEnv("TEND_LOG_DIR", "logs"),
		Debug:         getEnvBool("TEND_DEBUG", false),
	}

	if v := os.Getenv("TEND_TOKEN_TTL_HOURS"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil || ttl <= 0 {
			return cfg, fmt.Errorf("invalid TEND_TOKEN_TTL_HOURS %q", v)
		}
		cfg.TokenTTLHours = ttl
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("TEND_JWT_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
