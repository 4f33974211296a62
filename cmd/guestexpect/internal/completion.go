package internal

import (
	"github.com/spf13/cobra"
)

func NewCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  $ source <(guestexpect completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ guestexpect completion bash > /etc/bash_completion.d/guestexpect
  # macOS:
  $ guestexpect completion bash > /usr/local/etc/bash_completion.d/guestexpect

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ guestexpect completion zsh > "${fpath[1]}/_guestexpect"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ guestexpect completion fish | source

  # To load completions for each session, execute once:
  $ guestexpect completion fish > ~/.config/fish/completions/guestexpect.fish

PowerShell:

  PS> guestexpect completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> guestexpect completion powershell > guestexpect.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
	return cmd
}
