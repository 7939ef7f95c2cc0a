package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("failed to fetch status: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	fmt.Printf("Server:     %s (%s)\n", serverURL, status.Status)
	fmt.Printf("Version:    %s\n", status.Version)
	return nil
}
