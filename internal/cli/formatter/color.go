package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cmsdash/internal/domain"
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
	StyleMatch  = lipgloss.NewStyle().Foreground(ColorYellow).Underline(true)
)

// TargetBadge marks links that open in a new window; same-window links
// get no badge.
func TargetBadge(t domain.LinkTarget) string {
	if t == domain.TargetBlank {
		return StylePurple.Render("↗ new tab")
	}
	return ""
}

// ActivePill returns a colored indicator for slide visibility.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● Active")
	}
	return StyleDim.Render("○ Hidden")
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

// Warn renders a warning line.
func Warn(text string) string {
	return StyleYellow.Render("! " + text)
}

// Highlight styles the runes of s at the given indexes, as reported by a
// fuzzy matcher.
func Highlight(s string, indexes []int) string {
	if len(indexes) == 0 {
		return s
	}
	marked := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		marked[i] = true
	}
	var b strings.Builder
	for i, r := range []rune(s) {
		if marked[i] {
			b.WriteString(StyleMatch.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
