// Package testutil provides utilities for testing dotsetup components.
//
// Key components:
//   - Platform: a fixed platform.Descriptor, so detection never depends on the host
//   - Runner: a recording command.Runner with scripted results
//   - FileTree: declarative file layout written below a temporary directory
//
// No helper in this package touches the real package manager, systemd or D-Bus.
package testutil
