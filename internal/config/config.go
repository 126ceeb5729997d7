// Package config holds application settings that are not specific to the
// LLM provider layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/wisein/internal/metrics"
)

// Config holds runtime settings for the tutor, server and logging.
type Config struct {
	// DBPath overrides the default database location. Empty means
	// store.DefaultDBPath.
	DBPath string

	// HTTPAddr is the listen address for `wisein serve`.
	HTTPAddr string

	// CORSOrigins lists origins allowed to call the HTTP API.
	CORSOrigins []string

	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json

	Quiz      QuizConfig
	Interview InterviewConfig
	Generate  GenerateConfig
	API       APIConfig
}

// QuizConfig sets the constraints of a planned quiz and its fallback.
type QuizConfig struct {
	Size              int
	MaxMultipleChoice int
	MinGrammar        int
	FallbackSize      int
	FallbackTopic     string
}

// InterviewConfig controls interview sessions.
type InterviewConfig struct {
	// Length is the number of questions asked before the session ends.
	Length int
}

// GenerateConfig controls LLM question generation ahead of a search.
type GenerateConfig struct {
	Enabled   bool
	BatchSize int
}

// APIConfig bounds the work a single HTTP request may ask the solver for.
// The solver cannot be interrupted, so oversized searches are refused up
// front.
type APIConfig struct {
	MaxPoolSize     int // items in an explicit pool
	MaxQuizSize     int // constraints.size
	MaxSearchStates int // worst-case solver states
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		LogFormat:   metrics.FormatText,
		Quiz: QuizConfig{
			Size:              3,
			MaxMultipleChoice: 3,
			MinGrammar:        0,
			FallbackSize:      1,
			FallbackTopic:     "python",
		},
		Interview: InterviewConfig{
			Length: 5,
		},
		Generate: GenerateConfig{
			Enabled:   false,
			BatchSize: 5,
		},
		API: APIConfig{
			MaxPoolSize:     64,
			MaxQuizSize:     20,
			MaxSearchStates: 1_000_000,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. Malformed numbers and booleans are
// reported rather than ignored.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v := os.Getenv("WISEIN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WISEIN_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("WISEIN_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("WISEIN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WISEIN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("WISEIN_QUIZ_FALLBACK_TOPIC"); v != "" {
		cfg.Quiz.FallbackTopic = v
	}

	envInt(&errs, "WISEIN_QUIZ_SIZE", &cfg.Quiz.Size)
	envInt(&errs, "WISEIN_QUIZ_MAX_MC", &cfg.Quiz.MaxMultipleChoice)
	envInt(&errs, "WISEIN_QUIZ_MIN_GRAMMAR", &cfg.Quiz.MinGrammar)
	envInt(&errs, "WISEIN_QUIZ_FALLBACK_SIZE", &cfg.Quiz.FallbackSize)
	envInt(&errs, "WISEIN_INTERVIEW_LENGTH", &cfg.Interview.Length)
	envInt(&errs, "WISEIN_GENERATE_BATCH", &cfg.Generate.BatchSize)
	envInt(&errs, "WISEIN_API_MAX_POOL", &cfg.API.MaxPoolSize)
	envInt(&errs, "WISEIN_API_MAX_QUIZ_SIZE", &cfg.API.MaxQuizSize)
	envInt(&errs, "WISEIN_API_MAX_SEARCH_STATES", &cfg.API.MaxSearchStates)

	if v := os.Getenv("WISEIN_GENERATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WISEIN_GENERATE: %w", err))
		} else {
			cfg.Generate.Enabled = b
		}
	}

	return cfg, errors.Join(errs...)
}

// Validate checks that settings are usable.
func (c Config) Validate() error {
	if _, err := metrics.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != metrics.FormatText && c.LogFormat != metrics.FormatJSON {
		return fmt.Errorf("unknown log format %q (want %s or %s)", c.LogFormat, metrics.FormatText, metrics.FormatJSON)
	}
	if c.Quiz.Size < 0 || c.Quiz.FallbackSize < 0 {
		return fmt.Errorf("quiz sizes must not be negative")
	}
	if c.Quiz.MaxMultipleChoice < 0 || c.Quiz.MinGrammar < 0 {
		return fmt.Errorf("quiz format and category bounds must not be negative")
	}
	if c.Quiz.FallbackTopic == "" {
		return fmt.Errorf("quiz fallback topic is required")
	}
	if c.Interview.Length < 1 {
		return fmt.Errorf("interview length must be at least 1")
	}
	if c.Generate.Enabled && c.Generate.BatchSize < 1 {
		return fmt.Errorf("generation batch size must be at least 1")
	}
	if c.API.MaxPoolSize < 1 || c.API.MaxQuizSize < 1 || c.API.MaxSearchStates < 1 {
		return fmt.Errorf("API request limits must be at least 1")
	}
	return nil
}

func envInt(errs *[]error, key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
