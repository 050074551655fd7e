package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	// RequireFullRound gates auto-advance on every admitted player having
	// submitted or voted; a forced advance always passes.
	RequireFullRound bool
	// AllowBluffEdits lets the operator edit a submitted bluff while the
	// round is still collecting answers.
	AllowBluffEdits bool

	RetryAttempts       int
	RetryDelayMillis    int
	PollIntervalSeconds int

	AdminPassword string
}

func Default() Config {
	return Config{
		RequireFullRound:    true,
		AllowBluffEdits:     true,
		RetryAttempts:       2,
		RetryDelayMillis:    500,
		PollIntervalSeconds: 3,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("REQUIRE_FULL_ROUND"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.RequireFullRound = value
		}
	}
	if raw := os.Getenv("ALLOW_BLUFF_EDITS"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AllowBluffEdits = value
		}
	}
	if raw := os.Getenv("RETRY_ATTEMPTS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.RetryAttempts = value
		}
	}
	if raw := os.Getenv("RETRY_DELAY_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.RetryDelayMillis = value
		}
	}
	if raw := os.Getenv("POLL_INTERVAL_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.PollIntervalSeconds = value
		}
	}
	if raw := os.Getenv("ADMIN_PASSWORD"); raw != "" {
		cfg.AdminPassword = raw
	}
	return cfg
}
