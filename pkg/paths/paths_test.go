package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name         string
		dotfilesRoot string
		envSetup     map[string]string
		validate     func(t *testing.T, p Paths)
	}{
		{
			name:         "explicit dotfiles root",
			dotfilesRoot: "/tmp/dotfiles",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/dotfiles", p.DotfilesRoot())
				assert.False(t, p.UsedFallback())
			},
		},
		{
			name: "from DOTFILES_ROOT env",
			envSetup: map[string]string{
				EnvDotfilesRoot: "/env/dotfiles",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/dotfiles", p.DotfilesRoot())
			},
		},
		{
			name: "git repository or fallback",
			validate: func(t *testing.T, p Paths) {
				assert.NotEmpty(t, p.DotfilesRoot())
				assert.True(t, filepath.IsAbs(p.DotfilesRoot()), "Path should be absolute")
			},
		},
		{
			name:         "expand tilde in explicit path",
			dotfilesRoot: "~/my-dotfiles",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, filepath.Join(home, "my-dotfiles"), p.DotfilesRoot())
			},
		},
		{
			name:         "XDG directories",
			dotfilesRoot: "/tmp/dotfiles",
			envSetup: map[string]string{
				"XDG_CONFIG_HOME": "/custom/config",
				"XDG_DATA_HOME":   "/custom/data",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/config", p.ConfigHome())
				assert.Equal(t, "/custom/data", p.DataHome())
				assert.Equal(t, "/custom/config/dotsetup", p.ConfigDir())
				assert.Equal(t, "/custom/config/dotsetup/config.toml", p.UserConfigPath())
				assert.Equal(t, "/custom/config/systemd/user", p.SystemdUserDir())
			},
		},
		{
			name:         "config dir override",
			dotfilesRoot: "/tmp/dotfiles",
			envSetup: map[string]string{
				EnvConfigDir: "/elsewhere",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/elsewhere", p.ConfigDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvHome, home)
			t.Setenv(EnvDotfilesRoot, "")
			t.Setenv(EnvConfigDir, "")
			t.Setenv("XDG_CONFIG_HOME", "")
			t.Setenv("XDG_DATA_HOME", "")

			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.dotfilesRoot)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestRootFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	p, err := New("/dot")
	require.NoError(t, err)

	assert.Equal(t, "/dot/packages.txt", p.RootFile("packages.txt"))
	assert.Equal(t, "/dot/lists/arch.txt", p.RootFile("lists/arch.txt"))
	assert.Equal(t, "/abs/Brewfile", p.RootFile("/abs/Brewfile"))
	assert.Equal(t, filepath.Join(home, "Brewfile"), p.RootFile("~/Brewfile"))
	assert.Equal(t, "/dot/.dotsetup.toml", p.RootConfigPath())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/x/y", filepath.Join(home, "x", "y")},
		{"~other/x", "~other/x"},
		{"/abs", "/abs"},
		{"rel", "rel"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestGetHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	got, err := GetHomeDirectory()
	require.NoError(t, err)

	want, _ := os.UserHomeDir()
	assert.Equal(t, want, got)
}
