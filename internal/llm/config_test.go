package llm

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "MATHSHEET_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, ""},
		{"openai without key", Config{Provider: "openai"}, "MATHSHEET_OPENAI_API_KEY"},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, ""},
		{"openrouter without key", Config{Provider: "openrouter"}, "MATHSHEET_OPENROUTER_API_KEY"},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, ""},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown provider", Config{Provider: "unknown"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MATHSHEET_LLM_PROVIDER", "openai")
	t.Setenv("MATHSHEET_OPENAI_API_KEY", "sk-env")
	t.Setenv("MATHSHEET_OPENAI_MODEL", "gpt-3.5-turbo")
	t.Setenv("MATHSHEET_LLM_TIMEOUT", "12s")
	t.Setenv("MATHSHEET_LLM_MAX_ATTEMPTS", "5")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Fatalf("env not applied: %+v", cfg.OpenAI)
	}
	if cfg.Timeout != 12*time.Second {
		t.Errorf("expected 12s timeout, got %s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_IgnoresBadDurations(t *testing.T) {
	t.Setenv("MATHSHEET_LLM_TIMEOUT", "soon")
	if cfg := ConfigFromEnv(); cfg.Timeout != DefaultConfig().Timeout {
		t.Fatalf("expected default timeout, got %s", cfg.Timeout)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("expected anthropic to win over openrouter, got %q", cfg.Provider)
	}

	t.Setenv("GEMINI_API_KEY", "g")
	if cfg, _ := DiscoverConfig(); cfg.Provider != "gemini" {
		t.Fatalf("expected gemini first, got %q", cfg.Provider)
	}
}
