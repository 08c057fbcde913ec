package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one worksheet and write it to a file",
	Long: `Generate a single worksheet without the UI.

Runs one throwaway session through the same entitlement and generation
flow as the TUI, then exports the result.`,
	Example: `  mathsheet generate --level P3 --topic fractions --difficulty medium
  mathsheet generate --level P5 --topic word-problems --answers --format txt --out -`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("level", "", "Primary level, P1-P6 (required)")
	generateCmd.Flags().String("topic", "", "Topic, e.g. fractions or word-problems (required)")
	generateCmd.Flags().String("difficulty", "", "Easy, Medium or Hard (required)")
	generateCmd.Flags().Bool("answers", false, "Include answers and working steps")
	generateCmd.Flags().String("format", "pdf", "Output format: pdf or txt")
	generateCmd.Flags().StringP("out", "o", "", "Output file, or - for stdout (default: derived from the worksheet)")
	_ = generateCmd.MarkFlagRequired("level")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("difficulty")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	topic, _ := cmd.Flags().GetString("topic")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	answers, _ := cmd.Flags().GetBool("answers")
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	sel, err := worksheet.ParseSelection(level, topic, difficulty)
	if err != nil {
		return err
	}
	exp, err := export.ForFormat(format)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := newManager(cmd, st)
	if err != nil {
		return err
	}
	sess, err := mgr.Login("cli@localhost.localdomain")
	if err != nil {
		return err
	}
	defer mgr.Logout(sess.ID)

	outcome, err := sess.Controller.Generate(cmd.Context(), sel)
	if err != nil {
		return fmt.Errorf("generate worksheet: %w", err)
	}
	if outcome.State == session.StateBlocked {
		return fmt.Errorf("free limit is %d; raise --free-limit to generate", sess.User().MaxFreeWorksheets)
	}
	if outcome.Fallback {
		fmt.Fprintln(os.Stderr, "warning: question service unavailable, using the standard practice set")
	}

	if out == "-" {
		return sess.Controller.DownloadAs(cmd.OutOrStdout(), exp, answers)
	}
	if out == "" {
		out = export.Filename(outcome.Worksheet, answers, exp.Extension())
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := sess.Controller.DownloadAs(f, exp, answers); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d questions)\n", out, outcome.Worksheet.Title, len(outcome.Worksheet.Questions))
	return nil
}
