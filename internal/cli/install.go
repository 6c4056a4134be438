package cli

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/installers"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/spf13/cobra"
)

func newInstallCmd(opts *globalOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}
			return runInstall(cmd, e)
		},
	}
}

func runInstall(cmd *cobra.Command, e *env) error {
	logger := logging.GetLogger("cli.install")
	p := e.printer

	d := e.dispatcher(installers.Observer{
		Started: func(t installers.Task) {
			p.Info(MsgRunningInstaller, t.Name())
		},
	})

	plan, err := d.Plan(cmd.Context())
	printPlanFields(e, plan)
	if err != nil {
		return err
	}

	if plan.Empty {
		p.Warning(MsgEmptyList, relativeToRoot(e, plan.ListPath))
	} else {
		p.Info(MsgRunningManager, plan.Command.String())
	}

	report, err := d.Execute(cmd.Context(), plan)
	if err != nil {
		return err
	}
	if report.ManagerRan {
		p.Success(MsgManagerDone)
	}

	p.Heading(MsgInstallersTitle)
	p.InstallerResults(report.Installers)

	counts := installers.Counts(report.Installers)
	logger.Info().
		Bool("managerRan", report.ManagerRan).
		Int("installers", len(report.Installers)).
		Int("failed", counts[installers.StatusFailed]).
		Msg("Install finished")
	return nil
}

func relativeToRoot(e *env, path string) string {
	rel, err := filepath.Rel(e.paths.DotfilesRoot(), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
