package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	exclusionsCmd := &cobra.Command{
		Use:   "exclusions",
		Short: "Manage the never-auto-add exclusion set",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show exclusions",
		RunE:  runExclusionsList,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an exclusion",
		Long:  "Marks an external item as never-auto-add. List syncs skip it silently.",
		RunE:  runExclusionsAdd,
	}
	addCmd.Flags().String("external-id", "", "Provider ID, e.g. tmdb:603 (required)")
	addCmd.Flags().String("type", "", "Media type: movie or series (required)")
	addCmd.Flags().String("title", "", "Title (display only)")
	addCmd.Flags().Int("year", 0, "Year (display only)")
	_ = addCmd.MarkFlagRequired("external-id")
	_ = addCmd.MarkFlagRequired("type")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an exclusion",
		Args:  cobra.ExactArgs(1),
		RunE:  runExclusionsRemove,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all exclusions",
		RunE:  runExclusionsClear,
	}

	exclusionsCmd.AddCommand(listCmd)
	exclusionsCmd.AddCommand(addCmd)
	exclusionsCmd.AddCommand(removeCmd)
	exclusionsCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exclusionsCmd)
}

func runExclusionsList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	resp, err := client.Exclusions()
	if err != nil {
		return fmt.Errorf("failed to fetch exclusions: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No exclusions")
		return nil
	}

	fmt.Printf("Exclusions (%d):\n\n", resp.Total)
	fmt.Printf("  %-5s %-16s %-8s %-40s %s\n", "ID", "EXTERNAL ID", "TYPE", "TITLE", "YEAR")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, e := range resp.Items {
		title := e.Title
		if title == "" {
			title = "-"
		}
		fmt.Printf("  %-5d %-16s %-8s %-40s %d\n",
			e.ID, e.ExternalID, e.MediaType, truncate(title, 40), e.Year)
	}
	return nil
}

func runExclusionsAdd(cmd *cobra.Command, args []string) error {
	externalID, _ := cmd.Flags().GetString("external-id")
	mediaType, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")
	year, _ := cmd.Flags().GetInt("year")

	client := NewClient(serverURL, apiKey)
	if err := client.AddExclusion(mediaType, externalID, title, year); err != nil {
		return fmt.Errorf("failed to add exclusion: %w", err)
	}
	fmt.Printf("Excluded %s\n", externalID)
	return nil
}

func runExclusionsRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}
	client := NewClient(serverURL, apiKey)
	if err := client.RemoveExclusion(id); err != nil {
		return fmt.Errorf("failed to remove exclusion: %w", err)
	}
	fmt.Printf("Removed exclusion %d\n", id)
	return nil
}

func runExclusionsClear(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	if err := client.ClearExclusions(); err != nil {
		return fmt.Errorf("failed to clear exclusions: %w", err)
	}
	fmt.Println("Exclusions cleared")
	return nil
}
