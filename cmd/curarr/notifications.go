package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	notificationsCmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Manage notifications",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show notifications",
		RunE:  runNotificationsList,
	}
	listCmd.Flags().BoolP("unread", "u", false, "Only show unread notifications")

	readCmd := &cobra.Command{
		Use:   "read [id]",
		Short: "Mark a notification read (all with --all)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNotificationsRead,
	}
	readCmd.Flags().Bool("all", false, "Mark every notification read")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all notifications",
		RunE:  runNotificationsClear,
	}

	notificationsCmd.AddCommand(listCmd)
	notificationsCmd.AddCommand(readCmd)
	notificationsCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	unreadOnly, _ := cmd.Flags().GetBool("unread")

	client := NewClient(serverURL, apiKey)
	notifications, err := client.Notifications(unreadOnly)
	if err != nil {
		return fmt.Errorf("failed to fetch notifications: %w", err)
	}

	if jsonOutput {
		printJSON(notifications)
		return nil
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	unread, err := client.UnreadCount()
	if err != nil {
		return fmt.Errorf("failed to fetch unread count: %w", err)
	}

	fmt.Printf("Notifications (%d, %d unread):\n\n", len(notifications), unread)
	fmt.Printf("  %-5s %-8s %-20s %-40s %s\n", "ID", "LEVEL", "TITLE", "MESSAGE", "WHEN")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %-5d %-8s %-20s %-40s %s\n",
			marker, n.ID, n.Severity, truncate(n.Title, 20),
			truncate(n.Message, 40), formatTimeAgo(n.Timestamp))
	}
	return nil
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	client := NewClient(serverURL, apiKey)

	if all {
		if err := client.MarkAllNotificationsRead(); err != nil {
			return fmt.Errorf("failed to mark read: %w", err)
		}
		fmt.Println("All notifications marked read")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("notification id required (or use --all)")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}
	if err := client.MarkNotificationRead(id); err != nil {
		return fmt.Errorf("failed to mark read: %w", err)
	}
	fmt.Printf("Notification %d marked read\n", id)
	return nil
}

func runNotificationsClear(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	if err := client.ClearNotifications(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	fmt.Println("Notifications cleared")
	return nil
}
