package konsole

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/installers"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/rs/zerolog"
)

// Name is the builtin installer name
const Name = "konsole"

func init() {
	installers.RegisterBuiltin(Name, func(env installers.Env) installers.Task {
		return NewInstaller(env)
	})
}

// Installer links the Konsole assets and registers the switcher service
type Installer struct {
	SourceDir  string
	DataDir    string
	UnitDir    string
	UnitName   string
	Executable string
	// Desktop is the value of XDG_CURRENT_DESKTOP.
	Desktop string
	Systemd Systemd

	logger zerolog.Logger
}

// NewInstaller builds the installer from the run environment
func NewInstaller(env installers.Env) *Installer {
	exe, err := os.Executable()
	if err != nil {
		exe = "dotsetup"
	}
	return &Installer{
		SourceDir:  env.Paths.RootFile(env.Config.Konsole.SourceDir),
		DataDir:    filepath.Join(env.Paths.DataHome(), "konsole"),
		UnitDir:    env.Paths.SystemdUserDir(),
		UnitName:   env.Config.Konsole.UnitName,
		Executable: exe,
		Desktop:    env.Platform.Getenv("XDG_CURRENT_DESKTOP"),
		Systemd:    &SystemdClient{Runner: env.Runner},
		logger:     logging.GetLogger("konsole"),
	}
}

func (i *Installer) Name() string { return Name }

// IsKDE reports whether an XDG_CURRENT_DESKTOP value names KDE. The
// variable is a colon-separated list.
func IsKDE(desktop string) bool {
	for _, d := range strings.Split(desktop, ":") {
		if strings.EqualFold(strings.TrimSpace(d), "KDE") {
			return true
		}
	}
	return false
}

func (i *Installer) Run(ctx context.Context) (installers.Status, error) {
	if !IsKDE(i.Desktop) {
		i.logger.Info().Str("desktop", i.Desktop).Msg("Not a KDE session, skipping Konsole setup")
		return installers.StatusSkipped, nil
	}
	if info, err := os.Stat(i.SourceDir); err != nil || !info.IsDir() {
		i.logger.Info().Str("dir", i.SourceDir).Msg("No Konsole assets, skipping Konsole setup")
		return installers.StatusSkipped, nil
	}

	if _, err := LinkAssets(ctx, i.SourceDir, i.DataDir); err != nil {
		return installers.StatusFailed, err
	}

	unitPath := filepath.Join(i.UnitDir, i.UnitName)
	changed, err := WriteUnit(ctx, unitPath, RenderUnit(i.Executable))
	if err != nil {
		return installers.StatusFailed, err
	}
	if changed {
		i.logger.Info().Str("unit", unitPath).Msg("Wrote switcher unit")
		if err := i.Systemd.DaemonReload(ctx); err != nil {
			return installers.StatusFailed, err
		}
	}

	switch {
	case !i.Systemd.IsEnabled(ctx, i.UnitName):
		if err := i.Systemd.EnableNow(ctx, i.UnitName); err != nil {
			return installers.StatusFailed, err
		}
		i.logger.Info().Str("unit", i.UnitName).Msg("Enabled switcher service")
	case changed:
		// Pick up the new ExecStart.
		if err := i.Systemd.Restart(ctx, i.UnitName); err != nil {
			return installers.StatusFailed, err
		}
	case !i.Systemd.IsActive(ctx, i.UnitName):
		if err := i.Systemd.EnableNow(ctx, i.UnitName); err != nil {
			return installers.StatusFailed, err
		}
	}

	return installers.StatusSuccess, nil
}
