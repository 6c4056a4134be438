package installers

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
)

// DiscoverOptions controls the tree walk and the tasks it produces
type DiscoverOptions struct {
	ScriptName string
	SkipDirs   []string
	// IncludeRoot keeps <root>/<ScriptName>. It is normally the bootstrap
	// that launched this tool, so it is left out by default.
	IncludeRoot bool
	Shell       string
	Runner      command.Runner
}

// Discover walks root in lexical order and returns a ScriptTask for every
// regular file named opts.ScriptName. Unreadable directories are logged and
// skipped.
func Discover(root string, opts DiscoverOptions) ([]Task, error) {
	logger := logging.GetLogger("installers")

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "dotfiles root does not exist: %s", root).
				WithDetail("path", root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access dotfiles root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "dotfiles root is not a directory: %s", root)
	}

	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}

	var tasks []Task
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn().Err(walkErr).Str("path", path).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() != opts.ScriptName || !isRegular(path, d) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if rel == opts.ScriptName && !opts.IncludeRoot {
			logger.Debug().Str("path", path).Msg("Ignoring root-level installer")
			return nil
		}

		logger.Debug().Str("path", rel).Msg("Found installer")
		tasks = append(tasks, &ScriptTask{
			Path:   path,
			Rel:    rel,
			Shell:  opts.Shell,
			Runner: opts.Runner,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to walk %s", root)
	}

	logger.Info().Int("count", len(tasks)).Msg("Discovered installers")
	return tasks, nil
}

// isRegular accepts regular files and symlinks that resolve to one
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
