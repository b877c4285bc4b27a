package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change server settings",
	Long: `View and change server settings.

Examples:
  vidio settings get
  vidio settings get reveal_image
  vidio settings set reveal_image https://example.com/cake.png
  vidio settings set reveal_image ""     # restore the default`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show all settings or one value",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGetCmd,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSetCmd,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
}

func runSettingsGetCmd(cmd *cobra.Command, args []string) error {
	all, err := NewClient(serverURL).Settings()
	if err != nil {
		return fmt.Errorf("settings failed: %w", err)
	}

	if len(args) == 1 {
		value, ok := all[args[0]]
		if !ok {
			return fmt.Errorf("unknown setting: %s", args[0])
		}
		if jsonOutput {
			printJSON(map[string]string{"key": args[0], "value": value})
			return nil
		}
		fmt.Println(value)
		return nil
	}

	if jsonOutput {
		printJSON(all)
		return nil
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-16s %s\n", k, all[k])
	}
	return nil
}

func runSettingsSetCmd(cmd *cobra.Command, args []string) error {
	client, err := adminClientFor(serverURL)
	if err != nil {
		return err
	}

	resp, err := client.SetSetting(args[0], args[1])
	if err != nil {
		return fmt.Errorf("settings set failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Printf("%s = %s\n", resp.Key, resp.Value)
	return nil
}
