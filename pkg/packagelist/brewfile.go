package packagelist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// BrewEntry is one directive of a Homebrew bundle manifest
type BrewEntry struct {
	Kind string // tap, brew, cask, mas, vscode
	Name string
}

func (e BrewEntry) String() string {
	return e.Kind + " " + e.Name
}

var brewKinds = map[string]bool{
	"tap":    true,
	"brew":   true,
	"cask":   true,
	"mas":    true,
	"vscode": true,
}

// LoadBrewfile reads the manifest at path for display purposes
func LoadBrewfile(path string) ([]BrewEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "Brewfile not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open Brewfile %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	return ParseBrewfile(f)
}

// ParseBrewfile extracts `kind "name"` directives. Anything it does not
// recognize (Ruby conditionals, options hashes on their own line) is skipped;
// brew bundle remains the authority on the manifest.
func ParseBrewfile(r io.Reader) ([]BrewEntry, error) {
	entries := []BrewEntry{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		kind, rest, ok := strings.Cut(line, " ")
		if !ok || !brewKinds[kind] {
			continue
		}

		name, ok := quoted(strings.TrimSpace(rest))
		if !ok {
			continue
		}
		entries = append(entries, BrewEntry{Kind: kind, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// quoted returns the first single- or double-quoted string at the start of s
func quoted(s string) (string, bool) {
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') {
		return "", false
	}
	end := strings.IndexByte(s[1:], s[0])
	if end < 0 {
		return "", false
	}
	return s[1 : end+1], true
}
