package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "Manage custom filters",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show custom filters",
		RunE:  runFiltersList,
	}

	itemsCmd := &cobra.Command{
		Use:   "items <id>",
		Short: "Show items matching a filter",
		Args:  cobra.ExactArgs(1),
		RunE:  runFiltersItems,
	}

	filtersCmd.AddCommand(listCmd)
	filtersCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(filtersCmd)
}

// describeConditions renders the set conditions as a compact summary.
func describeConditions(c FilterConditions) string {
	var parts []string
	if c.Monitored != nil {
		parts = append(parts, fmt.Sprintf("monitored=%t", *c.Monitored))
	}
	if c.HasFile != nil {
		parts = append(parts, fmt.Sprintf("has_file=%t", *c.HasFile))
	}
	if c.CutoffMet != nil {
		parts = append(parts, fmt.Sprintf("cutoff_met=%t", *c.CutoffMet))
	}
	if c.QualityProfileID != nil {
		parts = append(parts, fmt.Sprintf("profile=%d", *c.QualityProfileID))
	}
	if c.Quality != nil {
		parts = append(parts, fmt.Sprintf("quality=%s", *c.Quality))
	}
	if c.MinYear != nil {
		parts = append(parts, fmt.Sprintf("year>=%d", *c.MinYear))
	}
	if c.MaxYear != nil {
		parts = append(parts, fmt.Sprintf("year<=%d", *c.MaxYear))
	}
	if len(parts) == 0 {
		return "(matches everything)"
	}
	return strings.Join(parts, ", ")
}

func runFiltersList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	filters, err := client.Filters()
	if err != nil {
		return fmt.Errorf("failed to fetch filters: %w", err)
	}

	if jsonOutput {
		printJSON(filters)
		return nil
	}

	if len(filters) == 0 {
		fmt.Println("No custom filters")
		return nil
	}

	fmt.Printf("Custom Filters (%d):\n\n", len(filters))
	for _, f := range filters {
		fmt.Printf("  %d. %s: %s\n", f.ID, f.Name, describeConditions(f.Conditions))
	}
	return nil
}

func runFiltersItems(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	client := NewClient(serverURL, apiKey)
	resp, err := client.FilterItems(id)
	if err != nil {
		return fmt.Errorf("failed to evaluate filter: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No matching items")
		return nil
	}

	fmt.Printf("Matching items (%d):\n\n", resp.Total)
	fmt.Printf("  %-5s %-40s %-6s %-16s %s\n", "ID", "TITLE", "YEAR", "QUALITY", "CUTOFF")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, it := range resp.Items {
		quality := it.Quality
		if quality == "" {
			quality = "-"
		}
		fmt.Printf("  %-5d %-40s %-6d %-16s %s\n",
			it.ID, truncate(it.Title, 40), it.Year, truncate(quality, 16), checkmark(it.CutoffMet))
	}
	return nil
}
