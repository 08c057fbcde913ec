package questiongen

import (
	"os"
	"time"
)

// Purpose labels this package's LLM calls in the event log.
const Purpose = "worksheet-gen"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// QuestionCount is how many questions a worksheet holds.
	QuestionCount int

	// Validators run in order on every parsed reply; the first failure
	// sends the generation to the fallback set.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// Timeout bounds the whole provider call, retries included.
	Timeout time.Duration
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		QuestionCount: 5,
		Validators: []Validator{
			&CountValidator{},
			&StructuralValidator{},
		},
		MaxTokens:   1500,
		Temperature: 0.7,
		Timeout:     45 * time.Second,
	}
}

// ConfigFromEnv applies MATHSHEET_QUESTION_TIMEOUT on top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MATHSHEET_QUESTION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
