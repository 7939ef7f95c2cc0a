package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show quality profiles",
	RunE:  runProfilesCmd,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	profiles, err := client.Profiles()
	if err != nil {
		return fmt.Errorf("failed to fetch profiles: %w", err)
	}

	if jsonOutput {
		printJSON(profiles)
		return nil
	}

	if len(profiles) == 0 {
		fmt.Println("No quality profiles")
		return nil
	}

	fmt.Println("Quality Profiles:")
	for _, p := range profiles {
		cutoff := p.Cutoff
		if cutoff == "" {
			cutoff = "(no cutoff)"
		}
		fmt.Printf("  %d. %-20s cutoff: %s\n", p.ID, p.Name, cutoff)
	}
	return nil
}
