package constants

const (
	AppName           = "tend"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/tend/tend.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultListenAddr is the address the API server binds to when none is configured
	DefaultListenAddr = ":8080"

	// DefaultTokenTTLHours is the lifetime of issued access tokens
	DefaultTokenTTLHours = 24

	// Repetition constants
	RepetitionDaily   = "daily"
	RepetitionWeekly  = "weekly"
	RepetitionMonthly = "monthly"
)
