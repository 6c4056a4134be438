package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/installers"
	"github.com/pterm/pterm"
)

// Printer writes status lines to one writer
type Printer struct {
	out     io.Writer
	info    *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	errorP  *pterm.PrefixPrinter
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		info:    pterm.Info.WithWriter(out),
		success: pterm.Success.WithWriter(out),
		warning: pterm.Warning.WithWriter(out),
		errorP:  pterm.Error.WithWriter(out),
	}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) Info(format string, args ...interface{}) {
	p.info.Println(fmt.Sprintf(format, args...))
}

func (p *Printer) Success(format string, args ...interface{}) {
	p.success.Println(fmt.Sprintf(format, args...))
}

func (p *Printer) Warning(format string, args ...interface{}) {
	p.warning.Println(fmt.Sprintf(format, args...))
}

func (p *Printer) Error(format string, args ...interface{}) {
	p.errorP.Println(fmt.Sprintf(format, args...))
}

// Heading prints a section title
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.out, GetStyle("Heading").Render(title))
}

// Field prints an aligned key/value line
func (p *Printer) Field(key, value string) {
	fmt.Fprintf(p.out, "  %s %s\n", GetStyle("Key").Render(key), GetStyle("Value").Render(value))
}

// Line prints raw text
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// StatusLabel renders an installer status in its style
func StatusLabel(status installers.Status) string {
	switch status {
	case installers.StatusSuccess:
		return GetStyle("Success").Render("ok")
	case installers.StatusFailed:
		return GetStyle("Error").Render("failed")
	case installers.StatusSkipped:
		return GetStyle("Skipped").Render("skipped")
	}
	return string(status)
}

// InstallerResults prints one line per installer result followed by totals
func (p *Printer) InstallerResults(results []installers.Result) {
	if len(results) == 0 {
		p.Line("  %s", GetStyle("Muted").Render("no secondary installers"))
		return
	}
	for _, r := range results {
		line := fmt.Sprintf("  %-8s %s", StatusLabel(r.Status), r.Name)
		if r.Err != nil && r.Status == installers.StatusFailed {
			line += GetStyle("Muted").Render("  " + firstLine(r.Err.Error()))
		}
		p.Line("%s", line)
	}

	counts := installers.Counts(results)
	p.Line("  %d succeeded, %d failed, %d skipped",
		counts[installers.StatusSuccess], counts[installers.StatusFailed], counts[installers.StatusSkipped])
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
