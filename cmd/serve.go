package cmd

import (
	"log/slog"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the backend server for the kiosk webview",
	Long: `Start the HTTP server the kiosk webview talks to. Recorder commands
and the recording library are served as JSON endpoints; recorder events are
pushed to the front-end over /events as server-sent events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		if port == "" {
			port = cfg.Server.Port
		}

		srv := server.New(cfg, port)

		slog.Info("Kiosk backend starting", "port", port, "recordings_dir", cfg.RecordingsDirectory())

		// Start server (this blocks)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().String("port", "", "port for the backend server (overrides config)")
}
