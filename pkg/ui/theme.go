package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the adaptive colors and pre-computed styles used by the
// tree view. Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Node types
	Directory lipgloss.AdaptiveColor
	Archive   lipgloss.AdaptiveColor
	File      lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	ErrorText     lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Directory: lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}, // Blue
		Archive:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		File:      lipgloss.AdaptiveColor{Light: "#555555", Dark: "#F8F8F2"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Error:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.Selected = r.NewStyle().Background(t.Highlight).Bold(true)
	t.Header = r.NewStyle().Foreground(t.Primary).Bold(true)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(t.Error)

	return t
}

// typeIcons maps MIME-like type tags to display glyphs. Prefix entries
// (trailing slash) match whole MIME classes.
var typeIcons = map[string]string{
	"directory":                   "📁",
	"application/zip":             "📦",
	"application/x-tar":           "📦",
	"application/gzip":            "📦",
	"application/x-7z-compressed": "📦",
	"application/pdf":             "📄",
	"application/json":            "🧾",
	"text/":                       "📝",
	"image/":                      "🖼",
	"audio/":                      "🎵",
	"video/":                      "🎬",
}

// fallbackIcon is used for unknown types.
const fallbackIcon = "•"

// GetTypeIcon returns the glyph and color for a type tag, with a defined
// fallback for unknown types.
func (t Theme) GetTypeIcon(fileType string, expandable bool) (string, lipgloss.AdaptiveColor) {
	color := t.File
	if fileType == "directory" {
		color = t.Directory
	} else if expandable {
		color = t.Archive
	}

	if icon, ok := typeIcons[fileType]; ok {
		return icon, color
	}
	if i := strings.IndexByte(fileType, '/'); i >= 0 {
		if icon, ok := typeIcons[fileType[:i+1]]; ok {
			return icon, color
		}
	}
	if expandable {
		// Unknown expandable types render like archives
		return typeIcons["application/zip"], color
	}
	return fallbackIcon, color
}
