package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/platform"
	"github.com/arthur-debert/dotsetup/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	root   string
	desc   *testutil.Platform
	runner *testutil.Runner
}

func newHarness(t *testing.T, desc *testutil.Platform, tree testutil.FileTree) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv("DOTFILES_ROOT", "")

	return &harness{
		root:   testutil.TempTree(t, tree),
		desc:   desc,
		runner: testutil.NewRunner(),
	}
}

func (h *harness) run(args ...string) (string, error) {
	noColor := false
	cmd := NewRootCmdWithDeps(Deps{Platform: h.desc, Runner: h.runner, Color: &noColor})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--root", h.root, "--set", "installers.builtin="}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInstall(t *testing.T) {
	h := newHarness(t, testutil.ArchLinux("yay"), testutil.FileTree{
		"packages-arch.txt": "# cli\ngit\n\nneovim\n",
		"zsh":               testutil.FileTree{"install.sh": ""},
		"tmux":              testutil.FileTree{"install.sh": ""},
	})
	h.runner.On("bash "+filepath.Join(h.root, "tmux", "install.sh"), testutil.Result{ExitCode: 1})

	out, err := h.run("install")
	require.NoError(t, err)

	assert.Equal(t, 1, h.runner.Count("yay -S --needed --noconfirm git neovim"))
	assert.Equal(t, 2, h.runner.Count("bash"))
	assert.Contains(t, out, "Arch Linux")
	assert.Contains(t, out, "1 succeeded, 1 failed, 0 skipped")
}

func TestRootWithoutCommandInstalls(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{"packages.txt": "git\n"})

	_, err := h.run()
	require.NoError(t, err)
	assert.Equal(t, []string{"sudo dnf install -y git"}, h.runner.Lines())
}

func TestInstall_ManagerExitCodePropagates(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{
		"packages.txt": "git\n",
		"zsh":          testutil.FileTree{"install.sh": ""},
	})
	h.runner.On("sudo dnf", testutil.Result{ExitCode: 7})

	_, err := h.run("install")
	require.Error(t, err)
	assert.Equal(t, 7, errors.ExitCode(err))
	assert.Equal(t, 0, h.runner.Count("bash"))
}

func TestInstall_Unsupported(t *testing.T) {
	desc := &testutil.Platform{Kernel: "Linux", Files: map[string]string{platform.OSReleaseFile: "ID=alpine\n"}}
	h := newHarness(t, desc, testutil.FileTree{"packages.txt": "git\n"})

	_, err := h.run("install")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPlatform))
	assert.Equal(t, 1, errors.ExitCode(err))
	assert.Empty(t, h.runner.Calls)
}

func TestInstall_EmptyListWarns(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{"packages.txt": "# todo\n"})

	out, err := h.run("install")
	require.NoError(t, err)
	assert.Contains(t, out, "is empty, skipping the package manager")
	assert.Empty(t, h.runner.Calls)
}

func TestDetect(t *testing.T) {
	h := newHarness(t, testutil.ArchLinux(), testutil.FileTree{"packages.txt": "git\n"})

	out, err := h.run("detect")
	require.NoError(t, err)
	assert.Contains(t, out, "Arch Linux")
	assert.Contains(t, out, "packages.txt")
	assert.Contains(t, out, "sudo pacman -S --needed --noconfirm <packages>")
	assert.Empty(t, h.runner.Calls)
}

func TestDetect_MacOS(t *testing.T) {
	h := newHarness(t, testutil.MacOS(), testutil.FileTree{"Brewfile": "brew \"git\"\n"})

	out, err := h.run("detect")
	require.NoError(t, err)
	assert.Contains(t, out, "brew bundle --file=")
	assert.Empty(t, h.runner.Calls)
}

func TestList(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{
		"packages-fedora.txt": "# comment\n\ngit\nneovim\n",
	})

	out, err := h.run("list")
	require.NoError(t, err)
	assert.Equal(t, "git\nneovim\n", out)
}

func TestList_Brewfile(t *testing.T) {
	h := newHarness(t, testutil.MacOS(), testutil.FileTree{
		"Brewfile": "tap \"homebrew/cask\"\nbrew \"git\"\ncask \"kitty\"\n",
	})

	out, err := h.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "git")
	assert.Contains(t, out, "kitty")
}

func TestInstallers(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{
		"install.sh": "",
		"zsh":        testutil.FileTree{"install.sh": ""},
	})

	out, err := h.run("installers", "--set", "installers.builtin=konsole")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("zsh", "install.sh"))
	assert.Contains(t, out, "konsole (builtin)")
	assert.NotContains(t, out, "\ninstall.sh")
}

func TestInstallers_None(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{})

	out, err := h.run("installers")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoInstallers)
}

func TestConfig(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{
		".dotsetup.toml": "[lists]\nuniversal = \"pkgs.txt\"\n",
	})

	out, err := h.run("config", "--set", "managers.elevate=doas")
	require.NoError(t, err)
	assert.Contains(t, out, "pkgs.txt")
	assert.Contains(t, out, "doas")
}

func TestConfig_Template(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{})

	out, err := h.run("config", "--template")
	require.NoError(t, err)
	assert.Contains(t, out, "[managers]")
	assert.Contains(t, out, "# elevate")
}

func TestInvalidOverride(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{})

	_, err := h.run("config", "--set", "nonsense")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestVersion(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{})

	out, err := h.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotsetup version dev")
}

func TestCompletion(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{})

	out, err := h.run("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dotsetup")

	_, err = h.run("completion", "tcsh")
	assert.Error(t, err)
}

func TestRelativeToRoot(t *testing.T) {
	h := newHarness(t, testutil.Fedora(), testutil.FileTree{})

	e, err := newEnv(&cobra.Command{}, &globalOptions{root: h.root}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "packages.txt", relativeToRoot(e, filepath.Join(h.root, "packages.txt")))
	assert.Equal(t, "/etc/elsewhere", relativeToRoot(e, "/etc/elsewhere"))
}
