// Package dispatcher runs one provisioning pass: detect the platform, pick
// the package list and the native package manager, install, then run every
// secondary installer.
//
// The pass is linear and never retries. Anything that goes wrong before
// or during the package-manager call ends the run; secondary installers
// only ever add entries to the report.
package dispatcher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/installers"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/packagelist"
	"github.com/arthur-debert/dotsetup/pkg/packagemanager"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/platform"
	"github.com/rs/zerolog"
)

// Options holds the collaborators of a run
type Options struct {
	Paths    paths.Paths
	Config   *config.Config
	Platform platform.Descriptor
	Runner   command.Runner
	// Observer receives secondary-installer progress.
	Observer installers.Observer
}

// Plan is what a run would do, fixed before anything executes
type Plan struct {
	Platform platform.Info
	// ListPath is the active package list, or the Brewfile on macOS.
	ListPath string
	Manager  packagemanager.Manager
	// Packages is nil when the manager reads its own manifest.
	Packages []string
	Command  command.Command
	// Empty is set when the list had no tokens; the manager is not called.
	Empty bool
}

// Report is the outcome of Run
type Report struct {
	Plan       *Plan
	ManagerRan bool
	Installers []installers.Result
}

// Dispatcher runs provisioning passes
type Dispatcher struct {
	opts   Options
	logger zerolog.Logger

	loadList func(path, marker string) ([]string, error)
}

// New creates a dispatcher. Missing collaborators get the real host
// implementations.
func New(opts Options) *Dispatcher {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Platform == nil {
		opts.Platform = platform.Host()
	}
	if opts.Runner == nil {
		opts.Runner = command.NewExecRunner()
	}
	return &Dispatcher{
		opts:     opts,
		logger:   logging.GetLogger("dispatcher"),
		loadList: packagelist.LoadWithMarker,
	}
}

// Plan detects the platform, selects the list and the manager and loads
// the list. Nothing is executed.
func (d *Dispatcher) Plan(ctx context.Context) (*Plan, error) {
	done := logging.LogOperationStart(d.logger, "plan")
	defer done()

	info := platform.Detect(d.opts.Platform)
	plan := &Plan{Platform: info}
	d.logger.Info().Str("platform", info.String()).Msg("Detected platform")

	if !info.Supported() {
		return plan, errors.Newf(errors.ErrUnsupportedPlatform, "unsupported platform: %s", info.String()).
			WithDetail("kernel", info.Kernel).
			WithDetail("id", info.ID)
	}

	listPath, err := SelectList(info, d.opts.Config.Lists, d.opts.Paths.DotfilesRoot())
	if err != nil {
		return plan, err
	}
	plan.ListPath = listPath

	manager, err := packagemanager.Select(info, d.opts.Platform, d.opts.Config.Managers)
	if err != nil {
		return plan, err
	}
	plan.Manager = manager

	if manager.UsesManifest {
		plan.Command = manager.Command(listPath, nil)
		return plan, nil
	}

	packages, err := d.loadList(listPath, d.opts.Config.Lists.CommentMarker)
	if err != nil {
		return plan, err
	}
	plan.Packages = packages
	if len(packages) == 0 {
		plan.Empty = true
		return plan, nil
	}
	plan.Command = manager.Command(listPath, packages)
	return plan, nil
}

// Run executes a full pass. The returned report is non-nil even on error
// and holds whatever was decided before the failure.
func (d *Dispatcher) Run(ctx context.Context) (*Report, error) {
	plan, err := d.Plan(ctx)
	if err != nil {
		return &Report{Plan: plan}, err
	}
	return d.Execute(ctx, plan)
}

// Execute carries out a plan returned by Plan: the package manager, then
// the secondary installers
func (d *Dispatcher) Execute(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{Plan: plan}

	if plan.Empty {
		d.logger.Warn().Str("list", plan.ListPath).Msg("Package list is empty, skipping package manager")
	} else {
		d.logger.Info().Str("command", plan.Command.String()).Msg("Running package manager")
		if err := d.opts.Runner.Run(ctx, plan.Command); err != nil {
			return report, managerError(plan.Manager, err)
		}
		report.ManagerRan = true
	}

	tasks, err := d.Installers()
	if err != nil {
		// Secondary installers never decide the outcome.
		d.logger.Warn().Err(err).Msg("Installer discovery failed")
		report.Installers = []installers.Result{{
			Name:   "discovery",
			Status: installers.StatusFailed,
			Err:    err,
		}}
		return report, nil
	}

	report.Installers = installers.RunAll(ctx, tasks, d.opts.Observer)
	return report, nil
}

// Installers returns the discovered scripts followed by the enabled builtins
func (d *Dispatcher) Installers() ([]installers.Task, error) {
	cfg := d.opts.Config.Installers
	tasks, err := installers.Discover(d.opts.Paths.DotfilesRoot(), installers.DiscoverOptions{
		ScriptName:  cfg.ScriptName,
		SkipDirs:    cfg.SkipDirs,
		IncludeRoot: cfg.IncludeRoot,
		Shell:       cfg.Shell,
		Runner:      d.opts.Runner,
	})
	if err != nil {
		return nil, err
	}

	builtins := installers.Builtins(cfg.Builtin, installers.Env{
		Paths:    d.opts.Paths,
		Config:   d.opts.Config,
		Runner:   d.opts.Runner,
		Platform: d.opts.Platform,
	})
	return append(tasks, builtins...), nil
}

// SelectList picks the package list for info below root. A distribution
// list wins over the universal one; macOS only ever uses the Brewfile.
func SelectList(info platform.Info, lists config.Lists, root string) (string, error) {
	dir := filepath.Join(root, lists.Dir)

	var candidates []string
	switch info.Kind {
	case platform.KindMacOS:
		candidates = []string{lists.Brewfile}
	case platform.KindArch:
		candidates = []string{lists.Arch, lists.Universal}
	case platform.KindFedora:
		candidates = []string{lists.Fedora, lists.Universal}
	default:
		return "", errors.Newf(errors.ErrUnsupportedPlatform, "no package list for platform %s", info.String())
	}

	var tried []string
	for _, name := range candidates {
		if name == "" {
			continue
		}
		path := filepath.Join(dir, name)
		tried = append(tried, path)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path, nil
		}
	}

	return "", errors.Newf(errors.ErrMissingConfiguration, "no package list found for %s", info.String()).
		WithDetail("tried", tried)
}

// managerError keeps the child's exit code on the outermost error so the
// process can exit with it
func managerError(m packagemanager.Manager, err error) error {
	wrapped := errors.Wrapf(err, errors.ErrSubprocess, "package manager %s failed", m.Name).
		WithDetail("manager", m.Name)
	if code, ok := errors.GetErrorDetails(err)[errors.DetailExitCode]; ok {
		wrapped.WithDetail(errors.DetailExitCode, code)
	}
	return wrapped
}
