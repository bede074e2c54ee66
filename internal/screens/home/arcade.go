package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/ui/components"
	"github.com/abhisek/nckh/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleFull = ` ███╗   ██╗ ██████╗██╗  ██╗██╗  ██╗
 ████╗  ██║██╔════╝██║ ██╔╝██║  ██║
 ██╔██╗ ██║██║     █████╔╝ ███████║
 ██║╚██╗██║██║     ██╔═██╗ ██╔══██║
 ██║ ╚████║╚██████╗██║  ██╗██║  ██║
 ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝`

const titleCompact = "N · C · K · H"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStats summarizes progress in a bordered box matching content width.
func renderStats(line string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(theme.Info).
		Render(line)
}

// renderMenu renders the menu in a card of the same width.
func renderMenu(menu components.Menu, cw int) string {
	return components.Card(strings.TrimRight(menu.View(), "\n"), cw)
}
