package main

import (
	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the labextract server",
	Long: `Start the labextract HTTP server.

The analyte table is loaded once at startup. Edits to the config file are
picked up while the server runs; a config that fails to load is rejected
and the previous one stays active.

The server provides:
  - /health                     - Basic server health check
  - /ready                      - Readiness check (analyte table loaded)
  - /api/bloodwork/upload       - Extract a lab report PDF
  - /api/bloodwork/upload/raw   - Show the reconstructed rows of a PDF
  - /api/bloodwork/rows         - Resolve a saved row set
  - /swagger                    - API documentation

Examples:
  labextract serve                    # Start on default port 8080
  labextract serve --port 3000        # Start on custom port
  labextract serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger()
		if err != nil {
			return err
		}

		h, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		if err := mgr.BindFlag("server.host", cmd.Flags().Lookup("host")); err != nil {
			return err
		}
		if err := mgr.BindFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
			return err
		}
		if path := mgr.ConfigFile(); path != "" {
			logger.Info("using config file", "path", path)
			mgr.WatchConfig()
		}

		srv, err := server.New(server.Config{
			ConfigManager: mgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")

	rootCmd.AddCommand(serveCmd)
}
