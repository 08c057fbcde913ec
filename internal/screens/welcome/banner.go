package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

const bannerArt = `
 ╔╦╗╔═╗╔╦╗╦ ╦╔═╗╦ ╦╔═╗╔═╗╔╦╗
 ║║║╠═╣ ║ ╠═╣╚═╗╠═╣║╣ ║╣  ║
 ╩ ╩╩ ╩ ╩ ╩ ╩╚═╝╩ ╩╚═╝╚═╝ ╩ `

const bannerCompact = "M A T H S H E E T"

// RenderBanner returns the product banner, or the spaced-out name on
// terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
