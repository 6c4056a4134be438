package ui

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	Width       int    `yaml:"width,omitempty"`
	MarginTop   int    `yaml:"marginTop,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Sheet is the YAML style sheet
type Sheet struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

var (
	registryOnce sync.Once
	registry     map[string]lipgloss.Style
)

// ParseStyles builds lipgloss styles from a YAML sheet. Unknown color
// names are an error so typos do not silently render unstyled.
func ParseStyles(data []byte) (map[string]lipgloss.Style, error) {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(sheet.Colors))
	for name, def := range sheet.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(sheet.Styles))
	for name, def := range sheet.Styles {
		style := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)

		if def.Foreground != "" {
			color, ok := colors[def.Foreground]
			if !ok {
				return nil, fmt.Errorf("style %s: unknown color %q", name, def.Foreground)
			}
			style = style.Foreground(color)
		}
		if def.Background != "" {
			color, ok := colors[def.Background]
			if !ok {
				return nil, fmt.Errorf("style %s: unknown color %q", name, def.Background)
			}
			style = style.Background(color)
		}

		if def.Width > 0 {
			style = style.Width(def.Width)
		}
		if def.MarginTop > 0 {
			style = style.MarginTop(def.MarginTop)
		}
		if def.PaddingLeft > 0 {
			style = style.PaddingLeft(def.PaddingLeft)
		}
		styles[name] = style
	}
	return styles, nil
}

// GetStyle returns the named style from the embedded sheet, or a plain
// style when the name is unknown
func GetStyle(name string) lipgloss.Style {
	registryOnce.Do(func() {
		styles, err := ParseStyles(defaultStyles)
		if err != nil {
			// The sheet is compiled in.
			panic(err)
		}
		registry = styles
	})
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
