package konsole

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// RenderUnit returns the user unit that runs the switcher
func RenderUnit(executable string) string {
	return fmt.Sprintf(`[Unit]
Description=Switch Konsole profiles with the KDE color scheme
PartOf=graphical-session.target
After=graphical-session.target

[Service]
Type=simple
ExecStart=%s konsole watch
Restart=on-failure
RestartSec=5

[Install]
WantedBy=graphical-session.target
`, executable)
}

// WriteUnit writes content to path unless the file already holds exactly
// that content. It reports whether the file changed.
func WriteUnit(ctx context.Context, path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, []byte(content)) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	osfs := filesystem.NewOSFileSystem("/")
	fs := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
	sfs := synthfs.New()

	op := sfs.CustomOperationWithID("konsole_unit_"+filepath.Base(path), func(ctx context.Context, fs filesystem.FileSystem) error {
		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return fs.WriteFile(path, []byte(content), 0644)
	})
	if _, err := synthfs.RunWithOptions(ctx, fs, synthfs.DefaultPipelineOptions(), op); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", path)
	}
	return true, nil
}
