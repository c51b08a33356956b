package main

import (
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running docsift server via HTTP.

These commands require a running server (docsift serve).
Use --server to specify a custom server URL. Authenticated endpoints read
the API key from the DOCSIFT_API_KEY environment variable.

Examples:
  docsift api health                      # Check server health
  docsift api ocr-image passport.jpg      # Extract raw text from an image
  docsift api extract-image licence.png   # Extract identity fields`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8000", "Server URL",
	)

	for _, ep := range endpoints.All(endpoints.Config{}) {
		if cmd := ep.Command(getServerURL); cmd != nil {
			apiCmd.AddCommand(cmd)
		}
	}

	rootCmd.AddCommand(apiCmd)
}
