// Package paths provides centralized path handling for dotsetup.
//
// It resolves the dotfiles root and the XDG base directories the rest of the
// tool writes to:
//
//   - Dotfiles root: --root flag, DOTFILES_ROOT, the enclosing git
//     repository, or the current directory (in that order)
//   - Config: $XDG_CONFIG_HOME/dotsetup (user configuration)
//   - Data home: $XDG_DATA_HOME (Konsole profiles are linked below it)
//   - Config home: $XDG_CONFIG_HOME (kdeglobals, systemd user units)
//
// # Usage
//
//	p, err := paths.New("") // Auto-detect dotfiles root
//	if err != nil {
//	    return err
//	}
//
//	root := p.DotfilesRoot()              // /home/user/dotfiles
//	list := p.RootFile("packages.txt")    // /home/user/dotfiles/packages.txt
//	units := p.SystemdUserDir()           // ~/.config/systemd/user
package paths
