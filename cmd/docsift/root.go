package main

import (
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Identity document OCR and field extraction service",
	Long: `Docsift extracts text and structured identity fields from document
images and PDFs.

The service provides:
  - Raw OCR over images with word-level bounding boxes
  - Page-by-page PDF text extraction with OCR fallback
  - Vision-model extraction of identity fields (name, document number, dates)
  - Plausibility validation of extracted documents`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docsift/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
