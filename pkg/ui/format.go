package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ColorEnabled reports whether styled output should go to f
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// SetColor switches both pterm and lipgloss between colored and plain output
func SetColor(enabled bool) {
	if enabled {
		pterm.EnableColor()
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).ColorProfile())
		return
	}
	pterm.DisableColor()
	lipgloss.SetColorProfile(termenv.Ascii)
}
