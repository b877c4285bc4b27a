package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Jellyfin through the server",
	Long: `Authenticate with the server's Jellyfin instance and save the session.

The username and password are prompted for when not given as flags.

Examples:
  vidio login
  vidio login --username alice --password secret`,
	Args: cobra.NoArgs,
	RunE: runLoginCmd,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved Jellyfin session",
	Args:  cobra.NoArgs,
	RunE:  runLogoutCmd,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringP("username", "u", "", "Jellyfin username")
	loginCmd.Flags().StringP("password", "p", "", "Jellyfin password")
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if username == "" {
		if username, err = promptRequired("Username"); err != nil {
			return err
		}
	}
	// Jellyfin accounts may have an empty password; only prompt when the
	// flag was not given at all.
	if !cmd.Flags().Changed("password") {
		if password, err = promptPassword("Password", true); err != nil {
			return err
		}
	}

	session, err := NewClient(serverURL).JellyfinLogin(username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	state, err := loadSession(serverURL)
	if err != nil {
		return err
	}
	state.Jellyfin = session
	if err := state.save(); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(session)
		return nil
	}
	fmt.Printf("Logged in as %s\n", session.Username)
	return nil
}

func runLogoutCmd(cmd *cobra.Command, args []string) error {
	state, err := loadSession(serverURL)
	if err != nil {
		return err
	}
	if state.Jellyfin == nil {
		fmt.Println("Not logged in")
		return nil
	}
	state.Jellyfin = nil
	if err := state.save(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
