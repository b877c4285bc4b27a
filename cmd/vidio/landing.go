package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var landingCmd = &cobra.Command{
	Use:   "landing",
	Short: "Show the anniversary page",
	Long: `Show the anniversary page text.

Examples:
  vidio landing              # Server default language
  vidio landing --lang fr    # French copy`,
	Args: cobra.NoArgs,
	RunE: runLandingCmd,
}

func init() {
	rootCmd.AddCommand(landingCmd)
	landingCmd.Flags().String("lang", "", "Language tag (e.g. en, fr)")
}

func runLandingCmd(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")

	page, err := NewClient(serverURL).Landing(lang)
	if err != nil {
		return fmt.Errorf("landing failed: %w", err)
	}

	if jsonOutput {
		printJSON(page)
		return nil
	}

	fmt.Println(page.Heading)
	fmt.Println(page.Years)
	fmt.Println(page.Tagline)
	fmt.Println()
	for _, p := range page.Paragraphs {
		fmt.Println(p)
		fmt.Println()
	}
	fmt.Println(page.Signature)
	fmt.Println()
	fmt.Println(page.Footer)
	fmt.Printf("\nImage: %s\n", page.RevealImage)
	if len(page.Languages) > 1 {
		fmt.Printf("Languages: %s\n", strings.Join(page.Languages, ", "))
	}
	return nil
}
