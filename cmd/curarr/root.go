package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	apiKey     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "curarr",
	Short: "CLI client for curarr library curation",
	Long: `curarr - CLI client for curarr library curation

A unified CLI for managing your media library, import lists,
custom filters, and notifications.

Run 'curarrd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8787", "Server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("CURARR_API_KEY"), "API key (or CURARR_API_KEY)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("curarr {{.Version}}\n")
}
