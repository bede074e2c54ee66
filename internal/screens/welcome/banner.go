package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/ui/theme"
)

const bannerArt = `
 ███╗   ██╗ ██████╗██╗  ██╗██╗  ██╗
 ████╗  ██║██╔════╝██║ ██╔╝██║  ██║
 ██╔██╗ ██║██║     █████╔╝ ███████║
 ██║╚██╗██║██║     ██╔═██╗ ██╔══██║
 ██║ ╚████║╚██████╗██║  ██╗██║  ██║
 ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "N C K H"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 40

// Tagline is shown under the banner.
const Tagline = "Research methods, one chapter at a time"

// RenderBanner returns the NCKH banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
