package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotsetup/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(dotsetup completion bash)

Zsh:
  $ dotsetup completion zsh > "${fpath[1]}/_dotsetup"

Fish:
  $ dotsetup completion fish > ~/.config/fish/completions/dotsetup.fish

PowerShell:
  PS> dotsetup completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// GenCompletion writes the completion script for shell
func GenCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	}
	return fmt.Errorf("unsupported shell: %s", shell)
}

// ManHeader is the header shared by every generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DOTSETUP",
		Section: "1",
		Source:  "dotsetup " + version.Version,
		Manual:  "dotsetup manual",
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManPagesWritten, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}
