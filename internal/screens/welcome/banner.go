package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/internsim/internal/ui/theme"
)

const bannerArt = `███ █   █ █████ ████ ████  █   █  ████ ███ █   █
 █  ██  █   █   █    █   █ ██  █ █      █  ██ ██
 █  █ █ █   █   ███  ████  █ █ █  ███   █  █ █ █
 █  █  ██   █   █    █  █  █  ██     █  █  █   █
███ █   █   █   ████ █   █ █   █ ████  ███ █   █`

const bannerCompact = "I N T E R N S I M"

// RenderBanner returns the banner in the primary colour, falling back to
// spaced letters below 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
