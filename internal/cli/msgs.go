package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort         = "Provision a machine from a dotfiles repository"
	MsgInstallShort      = "Install packages and run secondary installers"
	MsgDetectShort       = "Show the detected platform and package manager"
	MsgListShort         = "Print the active package list"
	MsgInstallersShort   = "List the secondary installers that would run"
	MsgConfigShort       = "Print the effective configuration"
	MsgKonsoleShort      = "Konsole theme integration"
	MsgKonsoleWatchShort = "Switch Konsole profiles when the KDE color scheme changes"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"
	MsgManShort          = "Generate man pages"

	// Flags
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot     = "Dotfiles root (default: $DOTFILES_ROOT, then the git toplevel, then the current directory)"
	MsgFlagSet      = "Override a configuration key for this run (key=value, repeatable)"
	MsgFlagTemplate = "Print a commented configuration template instead"
	MsgFlagManDir   = "Directory to write man pages into"

	// Output
	MsgPlatform         = "Platform"
	MsgList             = "List"
	MsgManager          = "Manager"
	MsgCommand          = "Command"
	MsgPackages         = "Packages"
	MsgEmptyList        = "Package list %s is empty, skipping the package manager"
	MsgRunningManager   = "Running %s"
	MsgManagerDone      = "Packages installed"
	MsgRunningInstaller = "Running %s"
	MsgInstallersTitle  = "Secondary installers"
	MsgNoInstallers     = "No secondary installers found"
	MsgBuiltinSuffix    = " (builtin)"
	MsgVersionFormat    = "dotsetup version %s\n"
	MsgCommitFormat     = "Commit: %s\n"
	MsgBuiltFormat      = "Built:  %s\n"
	MsgManPagesWritten  = "Man pages written to %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/lists-help.txt
	msgListsHelpRaw string
	MsgListLong     = strings.TrimSpace(msgListsHelpRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/konsole-watch-long.txt
	msgKonsoleWatchLongRaw string
	MsgKonsoleWatchLong    = strings.TrimSpace(msgKonsoleWatchLongRaw)
)
