package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/vidio/pkg/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your Jellyfin viewing statistics",
	Long: `Show viewing statistics for the logged-in Jellyfin user.

Run 'vidio login' first.`,
	Args: cobra.NoArgs,
	RunE: runStatsCmd,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	state, err := loadSession(serverURL)
	if err != nil {
		return err
	}
	session, err := state.requireJellyfin()
	if err != nil {
		return err
	}

	result, err := NewClient(serverURL).Stats(session)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	printStats(session.Username, result)
	return nil
}

func printStats(username string, s *stats.UserStats) {
	if username != "" {
		fmt.Printf("Viewing stats for %s\n\n", username)
	}
	fmt.Printf("Watch time:       %s\n", formatWatchTime(s.WatchTime()))
	fmt.Printf("Movies watched:   %d\n", s.MoviesWatched)
	fmt.Printf("Episodes watched: %d\n", s.EpisodesWatched)
	fmt.Printf("Series started:   %d\n", s.SeriesStarted)
	fmt.Printf("Series finished:  %d\n", s.SeriesWatched)

	if len(s.TopShows) == 0 {
		return
	}
	fmt.Println("\nTop shows:")
	for i, show := range s.TopShows {
		fmt.Printf("  %d. %-30s %3d/%-3d episodes (%d%%)\n",
			i+1, truncate(show.Name, 30), show.PlayedCount, show.TotalCount, show.Percentage)
	}
}

// formatWatchTime renders d as "1d 2h 3m", dropping leading zero units.
func formatWatchTime(d time.Duration) string {
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	mins := total % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
