package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the worksheet generator over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := server.ConfigFromEnv()
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("allow-origin") {
			cfg.AllowedOrigins, _ = cmd.Flags().GetStringSlice("allow-origin")
		}
		cfg.SecureCookies, _ = cmd.Flags().GetBool("secure-cookies")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		mgr, err := newManager(cmd, st)
		if err != nil {
			return err
		}

		srv, err := server.New(mgr, cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", server.DefaultAddr, "Listen address (overrides MATHSHEET_ADDR)")
	serveCmd.Flags().StringSlice("allow-origin", nil, "CORS allowed origin, repeatable (overrides MATHSHEET_ALLOWED_ORIGINS)")
	serveCmd.Flags().Bool("secure-cookies", false, "Mark the session cookie Secure (HTTPS only)")
}
