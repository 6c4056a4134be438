// Package packagelist reads the plain-text package lists and, for display
// only, the Homebrew bundle manifest.
//
// A package list holds one token per line. Lines whose first non-whitespace
// character is the comment marker are dropped, as are blank lines. Every
// other line is passed on verbatim, in file order; tokens are never
// validated, the package manager is authoritative for them.
package packagelist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
)

// DefaultCommentMarker starts a comment line
const DefaultCommentMarker = "#"

// Load reads the list at path using the default comment marker
func Load(path string) ([]string, error) {
	return LoadWithMarker(path, DefaultCommentMarker)
}

// LoadWithMarker reads the list at path. A missing file is reported as
// ErrFileNotFound; the caller is expected to abort the run.
func LoadWithMarker(path, marker string) ([]string, error) {
	logger := logging.GetLogger("packagelist")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "package list not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open package list %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	tokens, err := Parse(f, marker)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read package list %s", path)
	}

	logger.Debug().Str("path", path).Int("packages", len(tokens)).Msg("Loaded package list")
	return tokens, nil
}

// Parse filters comment and blank lines out of r
func Parse(r io.Reader, marker string) ([]string, error) {
	if marker == "" {
		marker = DefaultCommentMarker
	}

	tokens := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if isBlank(line) || IsComment(line, marker) {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// IsComment reports whether the first non-whitespace text of line is marker
func IsComment(line, marker string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), marker)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
