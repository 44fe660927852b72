package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with the crewdeck backend",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long: `Log in to the crewdeck backend and persist the session.

Missing credentials are prompted for when running in a terminal.

Examples:
  crewdeck auth login --email user@example.com --password mypass
  crewdeck auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			if email, err = promptIfInteractive("Email", false); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptIfInteractive("Password", true); err != nil {
				return err
			}
		}
		if email == "" || password == "" {
			return fmt.Errorf("--email and --password are required")
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		pair, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := app.session.SetSession(cmd.Context(), pair.AccessToken, pair.RefreshToken); err != nil {
			return err
		}

		user := app.session.User()
		fmt.Printf("Logged in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account and log in.

An invite token joins the new account to the inviting team in the same
step.

Examples:
  crewdeck auth register --name "Ada" --email ada@example.com --password mypass
  crewdeck auth register --email ada@example.com --password mypass --invite-token TOKEN`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		inviteToken, _ := cmd.Flags().GetString("invite-token")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}
		if name == "" {
			name = email
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		pair, err := app.client.Register(cmd.Context(), name, email, password, inviteToken)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if err := app.session.SetSession(cmd.Context(), pair.AccessToken, pair.RefreshToken); err != nil {
			return err
		}

		fmt.Println("Registration successful!")
		fmt.Printf("Logged in as %s\n", email)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		// Logout always succeeds locally; a backend failure is only logged.
		app.session.Logout(cmd.Context())

		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if !app.session.LoggedIn() {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'crewdeck auth login' to authenticate.")
			return nil
		}

		user := app.session.User()
		fmt.Println("Logged in")
		fmt.Printf("User ID: %s\n", user.ID)
		fmt.Printf("Name:    %s\n", user.Name)
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("Role:    %s\n", user.Role)

		profile, err := app.client.Me(cmd.Context())
		if err != nil {
			fmt.Println("\nToken may be expired or invalid.")
			fmt.Println("Use 'crewdeck auth login' to re-authenticate.")
			return nil
		}
		fmt.Printf("\nBackend profile confirmed for %s\n", profile.Email)
		return nil
	},
}

var authAcceptInviteCmd = &cobra.Command{
	Use:   "accept-invite <token>",
	Short: "Redeem a team invite token",
	Long: `Redeem an invite token for an existing account and refresh the
session so the new membership is visible immediately.

Examples:
  crewdeck auth accept-invite TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireSession(); err != nil {
			return err
		}

		pair, err := app.client.AcceptInvite(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to accept invite: %w", err)
		}

		if err := app.session.SetSession(cmd.Context(), pair.AccessToken, pair.RefreshToken); err != nil {
			return err
		}

		fmt.Println("Invite accepted.")
		return nil
	},
}

// promptIfInteractive prompts for a value when attached to a terminal
func promptIfInteractive(title string, secret bool) (string, error) {
	if !tui.ShouldPrompt() {
		return "", nil
	}
	return tui.PromptForString(tui.Prompt{Message: title, Required: true, Secret: secret})
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authAcceptInviteCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("name", "", "Display name (defaults to email)")
	authRegisterCmd.Flags().String("email", "", "Email address (required)")
	authRegisterCmd.Flags().String("password", "", "Password (required)")
	authRegisterCmd.Flags().String("invite-token", "", "Invite token to join a team on registration")
}
