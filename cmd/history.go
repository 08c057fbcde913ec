package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent worksheet generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		events, err := s.EventReader().QueryGenerationEvents(ctx, store.QueryOpts{Limit: limit, SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query generations: %w", err)
		}
		stats, err := s.EventReader().GenerationStats(ctx)
		if err != nil {
			return fmt.Errorf("query generation stats: %w", err)
		}

		printHistory(cmd.OutOrStdout(), events, stats)
		return nil
	},
}

func printHistory(w io.Writer, events []store.GenerationEvent, stats store.GenerationStats) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No worksheets generated yet.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-5s  %-20s  %-6s  %-4s  %-8s  %s\n",
		"ID", "Timestamp", "Level", "Topic", "Diff", "Qs", "Source", "Ms")
	fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, e := range events {
		source := "llm"
		if e.Fallback {
			source = "fallback"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-5s  %-20s  %-6s  %-4d  %-8s  %d\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Level,
			truncate(e.Topic, 20),
			e.Difficulty,
			e.QuestionCount,
			source,
			e.LatencyMs,
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d  Fallbacks: %d\n", stats.Total, stats.Fallbacks)
	if len(stats.ByFailure) == 0 {
		return
	}

	kinds := make([]string, 0, len(stats.ByFailure))
	for k := range stats.ByFailure {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-10s %d\n", k, stats.ByFailure[k])
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of generations to show")
	historyCmd.Flags().String("session", "", "Only show generations from this session ID")
}
