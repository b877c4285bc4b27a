package main

import (
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/vidio/internal/api/v1"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and Jellyfin status",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	status, err := NewClient(serverURL).Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatus(serverURL, status)
	return nil
}

func printStatus(server string, s *v1.StatusResponse) {
	fmt.Printf("Server:    %s (%s, version %s)\n", server, s.Status, s.Version)
	fmt.Printf("Admin:     %s\n", enabledLabel(s.Admin))

	jf := s.Jellyfin
	switch {
	case !jf.Configured:
		fmt.Println("Jellyfin:  not configured")
	case jf.Reachable:
		fmt.Printf("Jellyfin:  %s (version %s)\n", jf.ServerName, jf.Version)
	default:
		fmt.Printf("Jellyfin:  unreachable: %s\n", jf.Error)
	}
	if jf.BreakerState != "" {
		fmt.Printf("Breaker:   %s\n", jf.BreakerState)
	}
}

func enabledLabel(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
