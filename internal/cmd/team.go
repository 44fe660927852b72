package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/internal/api"
	"github.com/crewdeck/crewdeck/internal/tui"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage teams and memberships",
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all teams visible to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		teams, err := app.client.ListTeams(cmd.Context())
		if err != nil {
			return err
		}

		printTeams(teams)
		return nil
	},
}

var teamMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the teams you belong to",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		teams, err := app.client.TeamsByMember(cmd.Context(), app.session.User().ID)
		if err != nil {
			return err
		}

		printTeams(teams)
		return nil
	},
}

var teamGetCmd = &cobra.Command{
	Use:   "get <team-id>",
	Short: "Show a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		team, err := app.client.GetTeam(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %s\n", team.ID)
		fmt.Printf("Name:    %s\n", team.Name)
		fmt.Printf("Created: %s\n", team.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

var teamCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		team, err := app.client.CreateTeam(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Printf("Created team %q (%s)\n", team.Name, team.ID)
		return nil
	},
}

var teamRenameCmd = &cobra.Command{
	Use:   "rename <team-id> <name>",
	Short: "Rename a team",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		team, err := app.client.UpdateTeam(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		fmt.Printf("Renamed team %s to %q\n", team.ID, team.Name)
		return nil
	},
}

var teamRmCmd = &cobra.Command{
	Use:   "rm <team-id>",
	Short: "Delete a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		if !yes && tui.ShouldPrompt() {
			confirmed, err := tui.PromptForConfirmation(fmt.Sprintf("Delete team %s and all its todos?", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := app.client.DeleteTeam(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted team %s\n", args[0])
		return nil
	},
}

var teamMembersCmd = &cobra.Command{
	Use:   "members <team-id>",
	Short: "List the members of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		members, err := app.client.ListMembers(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(members) == 0 {
			fmt.Println("No members.")
			return nil
		}
		for _, m := range members {
			fmt.Printf("%-8s %s <%s>\n", m.Role, m.Name, m.Email)
		}
		return nil
	},
}

var teamInviteCmd = &cobra.Command{
	Use:   "invite <team-id>",
	Short: "Invite a member to a team",
	Long: `Send a team invitation to an email address.

The invited user joins as MEMBER unless --role LEAD is given. ADMIN is
never assignable by invitation.

Examples:
  crewdeck team invite 42 --email new@example.com
  crewdeck team invite 42 --email new@example.com --role LEAD`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		normalized, err := normalizeInviteRole(role)
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		if err := app.client.InviteMember(cmd.Context(), args[0], email, normalized); err != nil {
			return err
		}

		fmt.Printf("Invited %s to team %s as %s\n", email, args[0], normalized)
		return nil
	},
}

// normalizeInviteRole validates the role flag of team invite
func normalizeInviteRole(role string) (string, error) {
	switch strings.ToUpper(role) {
	case "", api.InviteRoleMember:
		return api.InviteRoleMember, nil
	case api.InviteRoleLead:
		return api.InviteRoleLead, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be LEAD or MEMBER", role)
	}
}

func printTeams(teams []api.Team) {
	if len(teams) == 0 {
		fmt.Println("No teams.")
		return
	}
	for _, team := range teams {
		fmt.Printf("%-24s %s\n", team.ID, team.Name)
	}
}

func init() {
	rootCmd.AddCommand(teamCmd)
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamMineCmd)
	teamCmd.AddCommand(teamGetCmd)
	teamCmd.AddCommand(teamCreateCmd)
	teamCmd.AddCommand(teamRenameCmd)
	teamCmd.AddCommand(teamRmCmd)
	teamCmd.AddCommand(teamMembersCmd)
	teamCmd.AddCommand(teamInviteCmd)

	teamInviteCmd.Flags().String("email", "", "Email address to invite (required)")
	teamInviteCmd.Flags().String("role", "MEMBER", "Role to grant (LEAD or MEMBER)")
	teamRmCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
