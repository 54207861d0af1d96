package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/ui/theme"
)

const bannerArt = `
 ___                  ___        _
/ __|_ _  __ _ _ __  / _ \ _  _ (_)___
\__ \ ' \/ _' | '_ \| (_) | || || |_ /
|___/_||_\__,_| .__/ \__\_\\_,_||_/__|
              |_|`

const bannerCompact = "S N A P Q U I Z"

// RenderBanner returns the app banner in the primary color. Terminals
// narrower than 42 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 42 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
