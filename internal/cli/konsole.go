package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dotsetup/pkg/konsole"
	"github.com/spf13/cobra"
)

func newKonsoleCmd(opts *globalOptions, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "konsole",
		Short: MsgKonsoleShort,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: MsgKonsoleWatchShort,
		Long:  MsgKonsoleWatchLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			configHome := e.paths.ConfigHome()
			switcher := konsole.NewSwitcher(deps.Runner, filepath.Join(configHome, "konsolerc"), cmd.OutOrStdout())
			return konsole.NewWatcher(configHome, e.config.Konsole.Debounce, switcher).Run(ctx)
		},
	})
	return cmd
}
