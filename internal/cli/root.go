// Package cli builds the dotsetup command tree
package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotsetup/internal/version"
	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/dispatcher"
	"github.com/arthur-debert/dotsetup/pkg/installers"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/platform"
	"github.com/arthur-debert/dotsetup/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Deps are the host collaborators. Tests swap them for fakes.
type Deps struct {
	Platform platform.Descriptor
	Runner   command.Runner
	// Color forces styled output on or off; nil means detect from stdout.
	Color *bool
}

type globalOptions struct {
	verbosity int
	root      string
	overrides []string
}

// env is everything a command needs after flag parsing
type env struct {
	paths   paths.Paths
	config  *config.Config
	printer *ui.Printer
	deps    Deps
}

func (e *env) dispatcher(obs installers.Observer) *dispatcher.Dispatcher {
	return dispatcher.New(dispatcher.Options{
		Paths:    e.paths,
		Config:   e.config,
		Platform: e.deps.Platform,
		Runner:   e.deps.Runner,
		Observer: obs,
	})
}

// NewRootCmd creates the root command wired to the real host
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(Deps{
		Platform: platform.Host(),
		Runner:   command.NewExecRunner(),
	})
}

// NewRootCmdWithDeps creates the root command with explicit collaborators
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotsetup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgInstallExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			color := ui.ColorEnabled(os.Stdout)
			if deps.Color != nil {
				color = *deps.Color
			}
			ui.SetColor(color)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}
			return runInstall(cmd, e)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringArrayVar(&opts.overrides, "set", nil, MsgFlagSet)

	rootCmd.AddCommand(newInstallCmd(opts, deps))
	rootCmd.AddCommand(newDetectCmd(opts, deps))
	rootCmd.AddCommand(newListCmd(opts, deps))
	rootCmd.AddCommand(newInstallersCmd(opts, deps))
	rootCmd.AddCommand(newConfigCmd(opts, deps))
	rootCmd.AddCommand(newKonsoleCmd(opts, deps))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	initTemplateFormatting()
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	return rootCmd
}

// newEnv resolves the dotfiles root and loads the configuration layers
func newEnv(cmd *cobra.Command, opts *globalOptions, deps Deps) (*env, error) {
	p, err := paths.New(opts.root)
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", MsgFallbackWarning)
	}

	overrides, err := config.ParseOverrides(opts.overrides)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Sources{
		UserFile:  p.UserConfigPath(),
		RootFile:  p.RootConfigPath(),
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("root", p.DotfilesRoot()).
		Bool("fallback", p.UsedFallback()).
		Msg("Environment ready")

	return &env{
		paths:   p,
		config:  cfg,
		printer: ui.NewPrinter(cmd.OutOrStdout()),
		deps:    deps,
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

// printPlanFields writes the platform section shared by install and detect
func printPlanFields(e *env, plan *dispatcher.Plan) {
	p := e.printer
	p.Field(MsgPlatform, plan.Platform.String())
	if plan.ListPath != "" {
		p.Field(MsgList, relativeToRoot(e, plan.ListPath))
	}
	if plan.Manager.Name != "" {
		p.Field(MsgManager, plan.Manager.Name)
	}
	if plan.Packages != nil {
		p.Field(MsgPackages, fmt.Sprintf("%d", len(plan.Packages)))
	}
}
