package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crewdeck",
	Short: "Team and todo dashboard for your terminal",
	Long: `crewdeck is a terminal client for the crewdeck team management backend.
Authenticate once, then manage your teams, invite members, and work
through team todos from the command line or the full-screen dashboard.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
