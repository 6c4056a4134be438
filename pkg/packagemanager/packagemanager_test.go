package packagemanager_test

import (
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/packagemanager"
	"github.com/arthur-debert/dotsetup/pkg/platform"
	"github.com/arthur-debert/dotsetup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func managers() config.Managers {
	return config.Default().Managers
}

func TestSelect(t *testing.T) {
	pkgs := []string{"git", "neovim"}

	tests := []struct {
		name         string
		desc         *testutil.Platform
		cfg          config.Managers
		wantName     string
		wantElevated bool
		wantCommand  string
	}{
		{
			name:        "macos uses brew bundle with the manifest",
			desc:        testutil.MacOS(),
			cfg:         managers(),
			wantName:    packagemanager.BrewBundle,
			wantCommand: "brew bundle --file=/dot/Brewfile",
		},
		{
			name:        "arch with yay",
			desc:        testutil.ArchLinux("yay", "paru"),
			cfg:         managers(),
			wantName:    "yay",
			wantCommand: "yay -S --needed --noconfirm git neovim",
		},
		{
			name:        "arch with only paru",
			desc:        testutil.ArchLinux("paru"),
			cfg:         managers(),
			wantName:    "paru",
			wantCommand: "paru -S --needed --noconfirm git neovim",
		},
		{
			name:         "arch without helper falls back to elevated pacman",
			desc:         testutil.ArchLinux(),
			cfg:          managers(),
			wantName:     packagemanager.Pacman,
			wantElevated: true,
			wantCommand:  "sudo pacman -S --needed --noconfirm git neovim",
		},
		{
			name:         "fedora uses elevated dnf",
			desc:         testutil.Fedora(),
			cfg:          managers(),
			wantName:     packagemanager.DNF,
			wantElevated: true,
			wantCommand:  "sudo dnf install -y git neovim",
		},
		{
			name:         "custom elevation prefix",
			desc:         testutil.Fedora(),
			cfg:          config.Managers{Elevate: "doas -n"},
			wantName:     packagemanager.DNF,
			wantElevated: true,
			wantCommand:  "doas -n dnf install -y git neovim",
		},
		{
			name:        "no elevation prefix",
			desc:        testutil.ArchLinux(),
			cfg:         config.Managers{Elevate: ""},
			wantName:    packagemanager.Pacman,
			wantCommand: "pacman -S --needed --noconfirm git neovim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := platform.Detect(tt.desc)

			m, err := packagemanager.Select(info, tt.desc, tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, m.Name)
			assert.Equal(t, tt.wantElevated, m.Elevated)
			assert.Equal(t, tt.wantCommand, m.Command("/dot/Brewfile", pkgs).String())
		})
	}
}

func TestSelect_Unsupported(t *testing.T) {
	desc := &testutil.Platform{Kernel: "Linux", Files: map[string]string{
		platform.OSReleaseFile: "ID=debian\n",
	}}

	m, err := packagemanager.Select(platform.Detect(desc), desc, managers())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPlatform))
	assert.Empty(t, m.Name)
}

func TestManagerDescribe(t *testing.T) {
	desc := testutil.ArchLinux()
	m, err := packagemanager.Select(platform.Detect(desc), desc, managers())
	require.NoError(t, err)
	assert.Equal(t, "sudo pacman -S --needed --noconfirm", m.Describe())
}

func TestCommandDoesNotAliasArgv(t *testing.T) {
	desc := testutil.Fedora()
	m, err := packagemanager.Select(platform.Detect(desc), desc, managers())
	require.NoError(t, err)

	first := m.Command("", []string{"a"})
	second := m.Command("", []string{"b"})
	assert.Equal(t, "sudo dnf install -y a", first.String())
	assert.Equal(t, "sudo dnf install -y b", second.String())
}
