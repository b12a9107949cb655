package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BoxColor returns the style for a mastery level.
func BoxColor(b domain.Box) lipgloss.Style {
	switch b {
	case domain.BoxKnowWell:
		return StyleGreen
	case domain.BoxSomewhat:
		return StyleYellow
	case domain.BoxDontKnow:
		return StyleRed
	default:
		return StyleDim
	}
}

// BoxIndicator returns a colored mastery label such as "● KNOW WELL".
func BoxIndicator(b domain.Box) string {
	switch b {
	case domain.BoxKnowWell:
		return StyleGreen.Render("● KNOW WELL")
	case domain.BoxSomewhat:
		return StyleYellow.Render("● SOMEWHAT")
	case domain.BoxDontKnow:
		return StyleRed.Render("● DON'T KNOW")
	default:
		return StyleDim.Render("○ UNSEEN")
	}
}

// RatingColor returns the style of the box a rating moves a card to.
func RatingColor(r domain.Rating) lipgloss.Style {
	return BoxColor(r.Box())
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
