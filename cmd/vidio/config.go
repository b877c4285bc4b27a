package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/vidio/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long: `Validates config.toml syntax, environment variable substitution and
field values without starting the server. Without a path the file is
found the same way vidiod finds it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Writes the default config.toml, by default to the XDG config directory.

With --from-current the discovered config is loaded instead and written
back fully resolved: environment references substituted and defaults
filled in.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configInitCmd.Flags().Bool("from-current", false, "Write the resolved current config instead of the default")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server:     %s (log: %s)\n", cfg.Addr(), cfg.Server.LogLevel)
	fmt.Printf("  Database:   %s\n", cfg.Database.Path)

	if cfg.Jellyfin.URL != "" {
		fmt.Printf("  Jellyfin:   %s (timeout %s, series cache %s)\n",
			cfg.Jellyfin.URL, cfg.Jellyfin.Timeout, cfg.Jellyfin.SeriesCacheTTL)
	} else {
		fmt.Println("  Jellyfin:   not configured (stats disabled)")
	}

	if cfg.Admin.PasswordHash != "" {
		fmt.Printf("  Admin:      enabled (tokens last %s)\n", cfg.Admin.TokenTTL)
	} else {
		fmt.Println("  Admin:      disabled (no password_hash)")
	}

	fmt.Printf("  Landing:    %s\n", cfg.Landing.DefaultLang)
	if cfg.RateLimit.LoginRequests > 0 {
		fmt.Printf("  Login rate: %d per %s\n", cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	fromCurrent, _ := cmd.Flags().GetBool("from-current")
	if fromCurrent {
		return writeResolvedConfig(path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set JELLYFIN_URL and VIDIO_ADMIN_HASH (see 'vidio admin hash-password'), then run 'vidiod'.")
	return nil
}

func writeResolvedConfig(path string) error {
	src, err := config.Discover()
	if err != nil {
		return err
	}
	cfg, err := config.Load(src)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Write(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote %s (resolved from %s)\n", path, src)
	return nil
}
