package konsole

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// linkedExtensions are the files Konsole loads from its data directory
var linkedExtensions = []string{".profile", ".colorscheme"}

// LinkResult lists what LinkAssets did
type LinkResult struct {
	Linked    []string
	Unchanged []string
}

// Changed reports whether any link was created or replaced
func (r LinkResult) Changed() bool { return len(r.Linked) > 0 }

// Assets returns the profile and color scheme files in srcDir, sorted
func Assets(srcDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}
	var assets []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range linkedExtensions {
			if strings.HasSuffix(e.Name(), ext) {
				assets = append(assets, filepath.Join(srcDir, e.Name()))
				break
			}
		}
	}
	sort.Strings(assets)
	return assets, nil
}

// LinkAssets symlinks every asset of srcDir into destDir. Targets that
// already point at the right source are left alone; anything else at the
// target path is removed first.
func LinkAssets(ctx context.Context, srcDir, destDir string) (LinkResult, error) {
	logger := logging.GetLogger("konsole.link")
	var result LinkResult

	assets, err := Assets(srcDir)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", srcDir)
	}

	osfs := filesystem.NewOSFileSystem("/")
	fs := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
	sfs := synthfs.New()

	var ops []synthfs.Operation
	for i, src := range assets {
		target := filepath.Join(destDir, filepath.Base(src))
		if current, err := os.Readlink(target); err == nil && current == src {
			result.Unchanged = append(result.Unchanged, target)
			continue
		}

		source, dest := src, target
		id := fmt.Sprintf("konsole_link_%d_%s", i, filepath.Base(src))
		ops = append(ops, sfs.CustomOperationWithID(id, func(ctx context.Context, fs filesystem.FileSystem) error {
			if err := fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return err
			}
			if err := fs.Remove(dest); err != nil && !os.IsNotExist(err) {
				return err
			}
			return fs.Symlink(source, dest)
		}))
		result.Linked = append(result.Linked, target)
	}

	if len(ops) == 0 {
		logger.Debug().Int("unchanged", len(result.Unchanged)).Msg("Konsole assets already linked")
		return result, nil
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	if _, err := synthfs.RunWithOptions(ctx, fs, options, ops...); err != nil {
		return result, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link Konsole assets into %s", destDir)
	}

	logger.Info().
		Int("linked", len(result.Linked)).
		Int("unchanged", len(result.Unchanged)).
		Str("dest", destDir).
		Msg("Linked Konsole assets")
	return result, nil
}
