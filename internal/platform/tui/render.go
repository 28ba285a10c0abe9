package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/numhunt/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
// The right half of a double-width rune is skipped; the terminal fills it.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
