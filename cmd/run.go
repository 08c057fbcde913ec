package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/app"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().String("out-dir", ".", "Directory for downloaded worksheets")
		c.Flags().Bool("no-splash", false, "Skip the splash screen")
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := newManager(cmd, st)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(app.Options{
		Sessions:   mgr,
		OutputDir:  outDir,
		SkipSplash: noSplash,
	})
}
