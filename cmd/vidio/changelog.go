package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	v1 "github.com/vmunix/vidio/internal/api/v1"
	"github.com/vmunix/vidio/internal/changelog"
)

var changelogCmd = &cobra.Command{
	Use:     "changelog",
	Aliases: []string{"cl"},
	Short:   "Browse and edit the changelog",
	Long: `Browse and edit the changelog.

Reading is open to everyone; add, edit and rm need 'vidio admin login'.

Examples:
  vidio changelog list
  vidio changelog search "subtitles"
  vidio changelog add --version 1.2.0 --title "Subtitle picker"
  vidio changelog edit 3 --title "Better subtitle picker"
  vidio changelog rm 3`,
}

var changelogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List changelog entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runChangelogListCmd,
}

var changelogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a changelog entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runChangelogShowCmd,
}

var changelogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search changelog entries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChangelogSearchCmd,
}

var changelogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a changelog entry (admin)",
	Args:  cobra.NoArgs,
	RunE:  runChangelogAddCmd,
}

var changelogEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a changelog entry (admin)",
	Long:  "Edit a changelog entry. Only the flags given are changed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runChangelogEditCmd,
}

var changelogRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a changelog entry (admin)",
	Args:    cobra.ExactArgs(1),
	RunE:    runChangelogRmCmd,
}

var changelogImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Replace the changelog from a TOML file (admin)",
	Long: `Replace every changelog entry with the entries in a TOML file.
The import is all or nothing.

File format:

  [[entry]]
  version = "1.0.0"
  title = "Anniversary page"
  body = "First release."
  published_at = 2025-03-14`,
	Args: cobra.ExactArgs(1),
	RunE: runChangelogImportCmd,
}

func init() {
	rootCmd.AddCommand(changelogCmd)
	changelogCmd.AddCommand(changelogListCmd, changelogShowCmd, changelogSearchCmd,
		changelogAddCmd, changelogEditCmd, changelogRmCmd, changelogImportCmd)

	changelogListCmd.Flags().Int("limit", 0, "Maximum entries to show (server default when 0)")
	changelogListCmd.Flags().Int("offset", 0, "Entries to skip")
	changelogSearchCmd.Flags().Int("limit", 0, "Maximum matches to show")

	for _, c := range []*cobra.Command{changelogAddCmd, changelogEditCmd} {
		c.Flags().String("version", "", "Release version (e.g. 1.2.0)")
		c.Flags().String("title", "", "Entry title")
		c.Flags().String("body", "", "Entry body")
		c.Flags().String("date", "", "Publish date (YYYY-MM-DD or RFC 3339)")
	}
	_ = changelogAddCmd.MarkFlagRequired("version")
	_ = changelogAddCmd.MarkFlagRequired("title")
}

func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry ID: %s", arg)
	}
	return id, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t.UTC(), nil
}

func runChangelogListCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	resp, err := NewClient(serverURL).ListChangelog(limit, offset)
	if err != nil {
		return fmt.Errorf("changelog list failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No changelog entries.")
		return nil
	}
	fmt.Printf("%-5s %-10s %-12s %s\n", "ID", "VERSION", "PUBLISHED", "TITLE")
	fmt.Println(strings.Repeat("-", 60))
	for _, e := range resp.Items {
		printEntryRow(e)
	}
	if shown := resp.Offset + len(resp.Items); shown < resp.Total {
		fmt.Printf("\nShowing %d-%d of %d (use --offset %d for more)\n", resp.Offset+1, shown, resp.Total, shown)
	}
	return nil
}

func printEntryRow(e *changelog.Entry) {
	fmt.Printf("%-5d %-10s %-12s %s\n", e.ID, truncate(e.Version, 10), e.PublishedAt.Format(time.DateOnly), e.Title)
}

func printEntry(e *changelog.Entry) {
	fmt.Printf("%s  %s\n", e.Version, e.Title)
	fmt.Printf("Published: %s  (ID %d)\n", e.PublishedAt.Format(time.DateOnly), e.ID)
	if e.Body != "" {
		fmt.Println()
		fmt.Println(e.Body)
	}
}

func runChangelogShowCmd(cmd *cobra.Command, args []string) error {
	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	e, err := NewClient(serverURL).GetChangelog(id)
	if err != nil {
		return fmt.Errorf("changelog show failed: %w", err)
	}

	if jsonOutput {
		printJSON(e)
		return nil
	}
	printEntry(e)
	return nil
}

func runChangelogSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := NewClient(serverURL).SearchChangelog(query, limit)
	if err != nil {
		return fmt.Errorf("changelog search failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Printf("No entries match %q.\n", query)
		return nil
	}
	fmt.Printf("%-5s %-6s %-10s %s\n", "ID", "SCORE", "VERSION", "TITLE")
	fmt.Println(strings.Repeat("-", 60))
	for _, m := range resp.Items {
		fmt.Printf("%-5d %-6.2f %-10s %s\n", m.Entry.ID, m.Score, truncate(m.Entry.Version, 10), m.Entry.Title)
	}
	return nil
}

func runChangelogAddCmd(cmd *cobra.Command, args []string) error {
	client, err := adminClientFor(serverURL)
	if err != nil {
		return err
	}

	req := v1.ChangelogRequest{}
	req.Version, _ = cmd.Flags().GetString("version")
	req.Title, _ = cmd.Flags().GetString("title")
	req.Body, _ = cmd.Flags().GetString("body")
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		t, err := parseDate(date)
		if err != nil {
			return err
		}
		req.PublishedAt = &t
	}

	e, err := client.AddChangelog(req)
	if err != nil {
		return fmt.Errorf("changelog add failed: %w", err)
	}

	if jsonOutput {
		printJSON(e)
		return nil
	}
	fmt.Printf("Added entry %d (%s)\n", e.ID, e.Version)
	return nil
}

func runChangelogEditCmd(cmd *cobra.Command, args []string) error {
	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	var req v1.UpdateChangelogRequest
	flags := cmd.Flags()
	if flags.Changed("version") {
		v, _ := flags.GetString("version")
		req.Version = &v
	}
	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		req.Title = &v
	}
	if flags.Changed("body") {
		v, _ := flags.GetString("body")
		req.Body = &v
	}
	if flags.Changed("date") {
		v, _ := flags.GetString("date")
		t, err := parseDate(v)
		if err != nil {
			return err
		}
		req.PublishedAt = &t
	}
	if req == (v1.UpdateChangelogRequest{}) {
		return fmt.Errorf("nothing to change: pass at least one of --version, --title, --body, --date")
	}

	client, err := adminClientFor(serverURL)
	if err != nil {
		return err
	}
	e, err := client.UpdateChangelog(id, req)
	if err != nil {
		return fmt.Errorf("changelog edit failed: %w", err)
	}

	if jsonOutput {
		printJSON(e)
		return nil
	}
	fmt.Printf("Updated entry %d\n", e.ID)
	return nil
}

func runChangelogRmCmd(cmd *cobra.Command, args []string) error {
	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	client, err := adminClientFor(serverURL)
	if err != nil {
		return err
	}
	if err := client.DeleteChangelog(id); err != nil {
		return fmt.Errorf("changelog rm failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{"id": id, "deleted": true})
		return nil
	}
	fmt.Printf("Deleted entry %d\n", id)
	return nil
}

// adminClientFor loads the saved admin token for server.
func adminClientFor(server string) (*Client, error) {
	state, err := loadSession(server)
	if err != nil {
		return nil, err
	}
	return state.adminClient()
}

type importFile struct {
	Entries []struct {
		Version     string    `toml:"version"`
		Title       string    `toml:"title"`
		Body        string    `toml:"body"`
		PublishedAt time.Time `toml:"published_at"`
	} `toml:"entry"`
}

// readImportFile parses a changelog TOML file into API requests.
func readImportFile(path string) ([]v1.ChangelogRequest, error) {
	var f importFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	reqs := make([]v1.ChangelogRequest, 0, len(f.Entries))
	for _, e := range f.Entries {
		req := v1.ChangelogRequest{Version: e.Version, Title: e.Title, Body: e.Body}
		if !e.PublishedAt.IsZero() {
			t := zonedOrUTC(e.PublishedAt)
			req.PublishedAt = &t
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// zonedOrUTC converts t to UTC. TOML local dates and datetimes carry no
// zone, so their wall clock is taken as UTC.
func zonedOrUTC(t time.Time) time.Time {
	switch t.Location().String() {
	case "date-local", "datetime-local":
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t.UTC()
}

func runChangelogImportCmd(cmd *cobra.Command, args []string) error {
	entries, err := readImportFile(args[0])
	if err != nil {
		return err
	}

	client, err := adminClientFor(serverURL)
	if err != nil {
		return err
	}
	resp, err := client.ImportChangelog(entries)
	if err != nil {
		return fmt.Errorf("changelog import failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Printf("Imported %d entries\n", resp.Imported)
	return nil
}
