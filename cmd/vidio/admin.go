package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/vidio/internal/auth"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin session and password tools",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as admin and save the token",
	Args:  cobra.NoArgs,
	RunE:  runAdminLoginCmd,
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke and forget the admin token",
	Args:  cobra.NoArgs,
	RunE:  runAdminLogoutCmd,
}

var adminHashCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for admin.password_hash",
	Long: `Print a bcrypt hash of the admin password.

Put the output in admin.password_hash, or export it as VIDIO_ADMIN_HASH
when using the default config.`,
	Args: cobra.NoArgs,
	RunE: runAdminHashCmd,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd, adminHashCmd)
	adminLoginCmd.Flags().StringP("password", "p", "", "Admin password")
	adminHashCmd.Flags().StringP("password", "p", "", "Password to hash")
}

func passwordFlagOrPrompt(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	return promptPassword("Password", false)
}

func runAdminLoginCmd(cmd *cobra.Command, args []string) error {
	password, err := passwordFlagOrPrompt(cmd)
	if err != nil {
		return err
	}

	tok, err := NewClient(serverURL).AdminLogin(password)
	if err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}

	state, err := loadSession(serverURL)
	if err != nil {
		return err
	}
	state.Admin = &AdminSession{Token: tok.Token, ExpiresAt: tok.ExpiresAt}
	if err := state.save(); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(tok)
		return nil
	}
	fmt.Printf("Admin session valid until %s\n", tok.ExpiresAt.Local().Format(time.DateTime))
	return nil
}

func runAdminLogoutCmd(cmd *cobra.Command, args []string) error {
	state, err := loadSession(serverURL)
	if err != nil {
		return err
	}
	if state.Admin == nil {
		fmt.Println("No admin session")
		return nil
	}

	// An expired token is already gone server-side; just drop it locally.
	if state.Admin.Valid(time.Now()) {
		client := NewClient(serverURL).WithAdminToken(state.Admin.Token)
		if err := client.AdminLogout(); err != nil {
			return fmt.Errorf("admin logout failed: %w", err)
		}
	}

	state.Admin = nil
	if err := state.save(); err != nil {
		return err
	}
	fmt.Println("Admin session ended")
	return nil
}

func runAdminHashCmd(cmd *cobra.Command, args []string) error {
	password, err := passwordFlagOrPrompt(cmd)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
