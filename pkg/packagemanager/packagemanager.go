// Package packagemanager maps a detected platform to the native installer
// invocation: brew bundle on macOS, an AUR helper or pacman on Arch-family
// systems, dnf on Fedora-family systems.
package packagemanager

import (
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/platform"
)

// Manager names
const (
	BrewBundle = "brew-bundle"
	Pacman     = "pacman"
	DNF        = "dnf"
)

// Manager is one package-manager strategy
type Manager struct {
	Name string
	// UsesManifest is set when the manager reads its own manifest format
	// instead of the plain-text list.
	UsesManifest bool
	// Elevated is set when the command runs through the elevation prefix.
	Elevated bool

	argv []string
}

// Command builds the install invocation. For manifest-based managers
// source is the manifest path and packages is ignored; for the others
// packages are appended verbatim.
func (m Manager) Command(source string, packages []string) command.Command {
	argv := append([]string{}, m.argv...)
	if m.UsesManifest {
		argv = append(argv, "--file="+source)
	} else {
		argv = append(argv, packages...)
	}
	return command.New(argv...)
}

// Describe renders the invocation without package arguments, for status output
func (m Manager) Describe() string {
	return strings.Join(m.argv, " ")
}

// Select picks the strategy for info. Unsupported hosts yield
// ErrUnsupportedPlatform and no strategy.
func Select(info platform.Info, d platform.Descriptor, cfg config.Managers) (Manager, error) {
	logger := logging.GetLogger("packagemanager")

	switch info.Kind {
	case platform.KindMacOS:
		return Manager{
			Name:         BrewBundle,
			UsesManifest: true,
			argv:         []string{"brew", "bundle"},
		}, nil

	case platform.KindArch:
		for _, helper := range cfg.AURHelpers {
			if helper == "" {
				continue
			}
			if path, err := d.LookPath(helper); err == nil {
				logger.Debug().Str("helper", helper).Str("path", path).Msg("Using AUR helper")
				// AUR helpers escalate on their own and refuse to run as root.
				return Manager{
					Name: helper,
					argv: []string{helper, "-S", "--needed", "--noconfirm"},
				}, nil
			}
		}
		logger.Debug().Strs("probed", cfg.AURHelpers).Msg("No AUR helper found, falling back to pacman")
		return elevated(Pacman, cfg.Elevate, "pacman", "-S", "--needed", "--noconfirm"), nil

	case platform.KindFedora:
		return elevated(DNF, cfg.Elevate, "dnf", "install", "-y"), nil
	}

	return Manager{}, errors.Newf(errors.ErrUnsupportedPlatform, "unsupported platform: %s", info.String()).
		WithDetail("kernel", info.Kernel).
		WithDetail("id", info.ID)
}

func elevated(name, prefix string, argv ...string) Manager {
	m := Manager{Name: name, argv: argv}
	if fields := strings.Fields(prefix); len(fields) > 0 {
		m.Elevated = true
		m.argv = append(fields, argv...)
	}
	return m
}
