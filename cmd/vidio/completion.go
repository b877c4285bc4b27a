package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for vidio.

To load completions:

Bash:
  $ source <(vidio completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ vidio completion bash > /etc/bash_completion.d/vidio
  # macOS:
  $ vidio completion bash > $(brew --prefix)/etc/bash_completion.d/vidio

Zsh:
  $ source <(vidio completion zsh)
  # To load completions for each session, execute once:
  $ vidio completion zsh > "${fpath[1]}/_vidio"

Fish:
  $ vidio completion fish | source
  # To load completions for each session, execute once:
  $ vidio completion fish > ~/.config/fish/completions/vidio.fish

PowerShell:
  PS> vidio completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> vidio completion powershell > vidio.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
