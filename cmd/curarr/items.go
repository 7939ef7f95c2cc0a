package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Manage library items",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List library items",
		RunE:  runItemsList,
	}
	listCmd.Flags().StringP("type", "t", "", "Filter by type (movie, series)")
	listCmd.Flags().IntP("limit", "l", 50, "Maximum number of items to return")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the library",
		RunE:  runItemsAdd,
	}
	addCmd.Flags().String("title", "", "Title (required)")
	addCmd.Flags().Int("year", 0, "Release year")
	addCmd.Flags().String("type", "", "Media type: movie or series (required)")
	addCmd.Flags().String("external-id", "", "Provider ID, e.g. tmdb:603 (required)")
	addCmd.Flags().Int64("profile", 0, "Quality profile ID")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("type")
	_ = addCmd.MarkFlagRequired("external-id")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item from the library",
		Long:  "Removes an item. With --exclude, also records an exclusion so list syncs never re-add it.",
		Args:  cobra.ExactArgs(1),
		RunE:  runItemsDelete,
	}
	deleteCmd.Flags().Bool("exclude", false, "Also exclude from future list syncs")

	itemsCmd.AddCommand(listCmd)
	itemsCmd.AddCommand(addCmd)
	itemsCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(itemsCmd)
}

func runItemsList(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL, apiKey)
	resp, err := client.Items(mediaType, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch items: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No items in library")
		return nil
	}

	fmt.Printf("Library (%d):\n\n", resp.Total)
	fmt.Printf("  %-5s %-40s %-6s %-8s %-16s %-7s %s\n",
		"ID", "TITLE", "YEAR", "TYPE", "QUALITY", "CUTOFF", "MONITORED")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, it := range resp.Items {
		quality := it.Quality
		if quality == "" {
			quality = "-"
		}
		fmt.Printf("  %-5d %-40s %-6d %-8s %-16s %-7s %s\n",
			it.ID, truncate(it.Title, 40), it.Year, it.Type,
			truncate(quality, 16), checkmark(it.CutoffMet), checkmark(it.Monitored))
	}
	return nil
}

func runItemsAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	year, _ := cmd.Flags().GetInt("year")
	mediaType, _ := cmd.Flags().GetString("type")
	externalID, _ := cmd.Flags().GetString("external-id")
	profileID, _ := cmd.Flags().GetInt64("profile")

	var profile *int64
	if profileID != 0 {
		profile = &profileID
	}

	client := NewClient(serverURL, apiKey)
	item, err := client.AddItem(mediaType, externalID, title, year, profile)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	if jsonOutput {
		printJSON(item)
		return nil
	}

	fmt.Printf("Added %s (%d) [id %d]\n", item.Title, item.Year, item.ID)
	return nil
}

func runItemsDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}
	exclude, _ := cmd.Flags().GetBool("exclude")

	client := NewClient(serverURL, apiKey)
	if err := client.DeleteItem(id, exclude); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if exclude {
		fmt.Printf("Deleted item %d and added exclusion\n", id)
	} else {
		fmt.Printf("Deleted item %d\n", id)
	}
	return nil
}
