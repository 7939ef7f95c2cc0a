package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/curarr/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Writes an annotated default config.toml. Edit it and start curarrd.",
	RunE:  runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("path", config.DefaultPath(), "Where to write the config file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Edit it, then start the daemon with 'curarrd'.")
	return nil
}
