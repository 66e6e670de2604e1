// help.go - keyboard reference overlay.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpContent = `Navigation
  j/k ↑/↓     Move up/down
  g/G         Jump to top/bottom
  Ctrl+d/u    Half page down/up

Tree
  Enter/l/→   Expand directory (fetch listing) or collapse it
  h/←         Collapse, or jump to parent
  y           Copy selected path to clipboard
  R           Reset persisted tree state

Other
  ?           This help
  q           Quit`

// RenderHelp renders the keyboard-reference modal, centered in the
// available area.
func RenderHelp(theme Theme, width, height int) string {
	r := theme.Renderer

	modalWidth := 48
	if modalWidth > width-4 {
		modalWidth = width - 4
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(helpContent))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Press any key to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	modal := modalStyle.Render(b.String())
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
	}
	return modal
}
