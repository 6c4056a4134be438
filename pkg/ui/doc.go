// Package ui renders dotsetup's human-facing output: pterm prefix lines for
// progress, and lipgloss styles from an embedded YAML sheet for headings
// and the closing summary. Colors are dropped when the output is not a
// terminal or NO_COLOR is set.
package ui
