package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docsift server",
	Long: `Start the docsift HTTP server.

The server provides:
  - /health              - Basic server health check
  - /ready               - Readiness check (includes OCR toolchain)
  - /ocr/image           - Raw text extraction from images
  - /ocr/pdf             - Page-by-page PDF text extraction
  - /ocr/extract/image   - Identity field extraction via vision model
  - /ocr/validate/image  - Field extraction plus document validation

Examples:
  docsift serve                    # Start on default port 8000
  docsift serve --port 3000        # Start on custom port
  docsift serve --host 127.0.0.1   # Bind to loopback only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Load config with hot reload
		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()

		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if cfgFile != "" {
			path = cfgFile
		}
		if _, err := os.Stat(path); err == nil {
			cmd.Printf("config already exists at %s\n", path)
			return nil
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		cmd.Printf("wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initConfigCmd)
}
