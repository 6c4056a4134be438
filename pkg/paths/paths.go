package paths

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for dotfiles location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvConfigDir overrides the XDG config directory for dotsetup
	EnvConfigDir = "DOTSETUP_CONFIG_DIR"

	// EnvDebug enables stderr tracing of root discovery
	EnvDebug = "DOTSETUP_DEBUG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for dotsetup-specific files
	AppDirName = "dotsetup"

	// UserConfigFile is the user-level configuration file name
	UserConfigFile = "config.toml"

	// RootConfigFile is the repository-level configuration file name
	RootConfigFile = ".dotsetup.toml"
)

// Paths provides centralized path management for dotsetup
type Paths interface {
	DotfilesRoot() string
	UsedFallback() bool
	RootFile(name string) string
	RootConfigPath() string
	ConfigDir() string
	UserConfigPath() string
	HomeDir() string
	DataHome() string
	ConfigHome() string
	SystemdUserDir() string
}

type paths struct {
	dotfilesRoot string
	usedFallback bool

	homeDir    string
	configDir  string
	dataHome   string
	configHome string
}

// New creates a new Paths instance with the given dotfiles root.
// If dotfilesRoot is empty, it will be determined from environment variables
// or defaults.
func New(dotfilesRoot string) (Paths, error) {
	p := &paths{}

	if dotfilesRoot == "" {
		root, usedFallback, err := findDotfilesRoot()
		if err != nil {
			return nil, err
		}
		p.dotfilesRoot = root
		p.usedFallback = usedFallback
	} else {
		p.dotfilesRoot = expandHome(dotfilesRoot)
	}

	absRoot, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}
	p.homeDir = homeDir

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	// xdg caches its values at init; pick up the current environment.
	xdg.Reload()

	p.dataHome = xdg.DataHome
	p.configHome = xdg.ConfigHome

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = expandHome(configDir)
	} else {
		p.configDir = filepath.Join(p.configHome, AppDirName)
	}
}

// findDotfilesRoot determines the dotfiles root using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findDotfilesRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		if os.Getenv(EnvDebug) != "" {
			fmt.Fprintf(os.Stderr, "Debug: findDotfilesRoot using git root: %s\n", gitRoot)
		}
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		if os.Getenv(EnvDebug) != "" {
			fmt.Fprintf(os.Stderr, "Debug: git command failed: %v\n", err)
		}
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// DotfilesRoot returns the root directory for dotfiles
func (p *paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// RootFile resolves a path relative to the dotfiles root. Absolute and
// ~-prefixed names are returned expanded but otherwise untouched.
func (p *paths) RootFile(name string) string {
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(p.dotfilesRoot, name)
}

func (p *paths) RootConfigPath() string {
	return p.RootFile(RootConfigFile)
}

// ConfigDir returns the XDG config directory for dotsetup
func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) UserConfigPath() string {
	return filepath.Join(p.configDir, UserConfigFile)
}

func (p *paths) HomeDir() string {
	return p.homeDir
}

// DataHome returns $XDG_DATA_HOME (not dotsetup-specific)
func (p *paths) DataHome() string {
	return p.dataHome
}

// ConfigHome returns $XDG_CONFIG_HOME (not dotsetup-specific)
func (p *paths) ConfigHome() string {
	return p.configHome
}

// SystemdUserDir is where user units are installed
func (p *paths) SystemdUserDir() string {
	return filepath.Join(p.configHome, "systemd", "user")
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
