package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/questiongen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/store"
)

// resolveLLMConfig prefers MATHSHEET_* settings and falls back to the
// vendors' standard key variables.
func resolveLLMConfig() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if discovered, ok := llm.DiscoverConfig(); ok {
		discovered.Timeout = cfg.Timeout
		discovered.Retry = cfg.Retry
		return discovered, nil
	}
	return llm.Config{}, err
}

// newGenerator builds the question generator. Without a usable provider
// every worksheet uses the fixed practice set, which is announced on stderr.
func newGenerator(ctx context.Context, events store.EventRepo) *questiongen.LLMGenerator {
	qcfg := questiongen.ConfigFromEnv()

	cfg, err := resolveLLMConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Worksheets will use the standard practice set.")
		return questiongen.New(nil, qcfg)
	}

	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		fmt.Fprintln(os.Stderr, "Worksheets will use the standard practice set.")
		return questiongen.New(nil, qcfg)
	}
	return questiongen.New(provider, qcfg)
}

// newManager wires a session manager to the store and generator.
func newManager(cmd *cobra.Command, st *store.Store) (*session.Manager, error) {
	limit, _ := cmd.Flags().GetInt("free-limit")
	if limit < 0 {
		return nil, fmt.Errorf("--free-limit must not be negative, got %d", limit)
	}

	events := st.EventRepo()
	gen := newGenerator(cmd.Context(), events)
	return session.NewManager(gen, session.ManagerConfig{
		MaxFreeWorksheets: limit,
		Events:            events,
	}), nil
}
