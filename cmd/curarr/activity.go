package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity",
	RunE:  runActivityCmd,
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	activityCmd.Flags().Int64("after", -1, "Only entries after this id, oldest first")
}

func runActivityCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	after, _ := cmd.Flags().GetInt64("after")

	client := NewClient(serverURL, apiKey)
	activities, err := client.Activity(limit, after)
	if err != nil {
		return fmt.Errorf("failed to fetch activity: %w", err)
	}

	if jsonOutput {
		printJSON(activities)
		return nil
	}

	if len(activities) == 0 {
		fmt.Println("No activity")
		return nil
	}

	fmt.Printf("Recent Activity (%d):\n\n", len(activities))
	fmt.Printf("  %-12s %-16s %s\n", "TIME", "TYPE", "MESSAGE")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, a := range activities {
		fmt.Printf("  %-12s %-16s %s\n",
			formatTimeAgo(a.CreatedAt), a.Type, truncate(a.Message, 50))
	}
	return nil
}
