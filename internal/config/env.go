package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidSettings is returned when an environment setting cannot be used.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds process-level options read from the environment.
type Settings struct {
	RulesFile    string
	LogLevel     string
	LogFormat    string
	LogOutput    string
	Addr         string
	BatchWorkers int
}

// LoadSettings reads an optional .env file, then the environment.
// Variables already set in the environment win over the file.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	workers, err := getEnvInt("TAXCALC_BATCH_WORKERS", 8)
	if err != nil {
		return nil, err
	}
	s := &Settings{
		RulesFile:    getEnv("TAXCALC_RULES_FILE", ""),
		LogLevel:     getEnv("TAXCALC_LOG_LEVEL", "warn"),
		LogFormat:    getEnv("TAXCALC_LOG_FORMAT", "console"),
		LogOutput:    getEnv("TAXCALC_LOG_OUTPUT", "stderr"),
		Addr:         getEnv("TAXCALC_ADDR", ":8080"),
		BatchWorkers: workers,
	}
	return s, s.Validate()
}

// Validate checks the settings
func (s *Settings) Validate() error {
	if s.BatchWorkers < 1 {
		return fmt.Errorf("%w: TAXCALC_BATCH_WORKERS must be at least 1, got %d", ErrInvalidSettings, s.BatchWorkers)
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		return fmt.Errorf("%w: TAXCALC_LOG_FORMAT must be 'console' or 'json', got %q", ErrInvalidSettings, s.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidSettings, key, v)
	}
	return n, nil
}
