package cmd

import (
	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the full-screen dashboard",
	Long: `Open the interactive dashboard: browse your teams, work through
their todos, add and complete tasks without leaving the terminal.

Examples:
  crewdeck dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		return tui.Run(cmd.Context(), app.client, app.session.User())
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
