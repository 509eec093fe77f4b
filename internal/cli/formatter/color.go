package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorGray   = lipgloss.Color("#a89984")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var lordColors = [domain.LordCount]lipgloss.Color{
	domain.LordKetu:    ColorGray,
	domain.LordVenus:   ColorPurple,
	domain.LordSun:     ColorHeader,
	domain.LordMoon:    ColorFg,
	domain.LordMars:    ColorRed,
	domain.LordRahu:    ColorBlue,
	domain.LordJupiter: ColorYellow,
	domain.LordSaturn:  ColorDim,
	domain.LordMercury: ColorGreen,
}

// LordColor returns the style used for a lord's name.
func LordColor(l domain.Lord) lipgloss.Style {
	if !l.Valid() {
		return StyleDim
	}
	return lipgloss.NewStyle().Foreground(lordColors[l])
}

// LordName renders the lord's name in its color.
func LordName(l domain.Lord) string {
	return LordColor(l).Render(l.String())
}

// LevelBadge returns a dim level label such as "[Antar]".
func LevelBadge(l domain.Level) string {
	return StyleDim.Render("[" + l.Label() + "]")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
