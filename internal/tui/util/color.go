package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette holds the chip and scene colors.
type Palette struct {
	Primary   lipgloss.Color // position chip
	Success   lipgloss.Color // setting on
	MutedDark lipgloss.Color // setting off
	Menu      lipgloss.Color
	MenuText  lipgloss.Color
	Content   lipgloss.Color
}

func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#3D6DFF"),
		Success:   lipgloss.Color("#2AA876"),
		MutedDark: lipgloss.Color("#5A5A5A"),
		Menu:      lipgloss.Color("#1F2A44"),
		MenuText:  lipgloss.Color("#FFFFFF"),
		Content:   lipgloss.Color("#2B2B2B"),
	}
}

// SceneStyles returns the menu and content panel styles. Both are plain
// when color is off so rows keep their exact cell width.
func SceneStyles(noColor bool) (menu, content lipgloss.Style) {
	menu, content = lipgloss.NewStyle(), lipgloss.NewStyle()
	if noColor {
		return menu, content
	}
	p := DefaultPalette()
	return menu.Background(p.Menu).Foreground(p.MenuText), content.Background(p.Content)
}
