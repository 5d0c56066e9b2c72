// Package config collects the runtime settings from the environment.
package config

import (
	"os"
	"strconv"
)

// Config is the application configuration
type Config struct {
	// Directory with the per-level question pool JSON files
	PoolDir string
	// Cards per study session
	LearningCount int
	QuestionCount int
	// Hours of the local day inside which reminders may fire
	ReminderStartHour int
	ReminderEndHour   int
}

// Default session and reminder settings
const (
	DefaultLearningCount     = 5
	DefaultQuestionCount     = 10
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// Load reads the configuration from the environment, falling back to
// defaults for anything unset
func Load() *Config {
	cfg := &Config{
		PoolDir:           envOr("POOL_DIR", "data/pools"),
		LearningCount:     envIntOr("LEARNING_COUNT", DefaultLearningCount),
		QuestionCount:     envIntOr("QUESTION_COUNT", DefaultQuestionCount),
		ReminderStartHour: envIntOr("REMINDER_START_HOUR", DefaultReminderStartHour),
		ReminderEndHour:   envIntOr("REMINDER_END_HOUR", DefaultReminderEndHour),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
