package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage import lists",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show configured import lists",
		RunE:  runListsList,
	}

	syncCmd := &cobra.Command{
		Use:   "sync <id>",
		Short: "Trigger an immediate sync",
		Args:  cobra.ExactArgs(1),
		RunE:  runListsSync,
	}

	previewCmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Preview a sync without applying changes",
		Long:  "Fetches the list and shows what a sync would do, without adding anything to the library.",
		Args:  cobra.ExactArgs(1),
		RunE:  runListsPreview,
	}

	statusCmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Show the sync phase for a list",
		Args:  cobra.ExactArgs(1),
		RunE:  runListsStatus,
	}

	listsCmd.AddCommand(listCmd)
	listsCmd.AddCommand(syncCmd)
	listsCmd.AddCommand(previewCmd)
	listsCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listsCmd)
}

func runListsList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	lists, err := client.Lists()
	if err != nil {
		return fmt.Errorf("failed to fetch lists: %w", err)
	}

	if jsonOutput {
		printJSON(lists)
		return nil
	}

	if len(lists) == 0 {
		fmt.Println("No import lists configured")
		return nil
	}

	fmt.Printf("Import Lists (%d):\n\n", len(lists))
	fmt.Printf("  %-5s %-24s %-10s %-8s %-8s %-9s %s\n",
		"ID", "NAME", "PROVIDER", "TYPE", "ENABLED", "AUTO-ADD", "LAST SYNC")
	fmt.Println("  " + strings.Repeat("-", 78))

	for _, l := range lists {
		lastSync := "never"
		if l.LastSyncAt != nil {
			lastSync = formatTimeAgo(*l.LastSyncAt)
		}
		fmt.Printf("  %-5d %-24s %-10s %-8s %-8s %-9s %s\n",
			l.ID, truncate(l.Name, 24), l.Provider, l.MediaType,
			checkmark(l.Enabled), checkmark(l.AutoAdd), lastSync)
	}
	return nil
}

func runListsSync(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	client := NewClient(serverURL, apiKey)
	result, err := client.SyncList(id)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Printf("Sync complete: %d added, %d existing, %d failed\n",
		result.Added, result.Existing, result.Failed)
	if result.Message != "" {
		fmt.Println(result.Message)
	}
	for _, f := range result.Failures {
		fmt.Printf("  failed: %s\n", f)
	}
	return nil
}

func runListsPreview(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	client := NewClient(serverURL, apiKey)
	items, err := client.PreviewList(id)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	if jsonOutput {
		printJSON(items)
		return nil
	}

	if len(items) == 0 {
		fmt.Println("List is empty")
		return nil
	}

	fmt.Printf("Preview (%d candidates):\n\n", len(items))
	fmt.Printf("  %-40s %-6s %s\n", "TITLE", "YEAR", "DISPOSITION")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, it := range items {
		disposition := "would add"
		switch {
		case it.InLibrary:
			disposition = "in library"
		case it.Excluded:
			disposition = "excluded"
		}
		fmt.Printf("  %-40s %-6d %s\n", truncate(it.Title, 40), it.Year, disposition)
	}
	return nil
}

func runListsStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	client := NewClient(serverURL, apiKey)
	status, err := client.ListSyncStatus(id)
	if err != nil {
		return fmt.Errorf("failed to fetch status: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	fmt.Printf("List %d: %s\n", status.ListID, status.Phase)
	return nil
}
