package tagchips

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"sidedrawer/internal/tui/state"
	"sidedrawer/internal/tui/util"
)

// View renders drawer setting flags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(flags []state.Flag, noColor bool) string {
	if len(flags) == 0 {
		return ""
	}
	// Honor NO_COLOR env var in addition to explicit param
	if !noColor && os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, renderChip(f, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(f state.Flag, noColor bool) string {
	label := chipLabel(f)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(f).Render(" " + label + " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func chipLabel(f state.Flag) string {
	switch f.Kind {
	case state.POSITION:
		if f.On {
			return "Menu right"
		}
		return "Menu left"
	case state.BOUNCE:
		return "Overdraw " + onOff(f.On)
	case state.AUTO_CLOSE:
		return "Auto-close " + onOff(f.On)
	case state.GESTURES:
		return "Gestures " + onOff(f.On)
	default:
		return "Flag"
	}
}

func chipStyle(f state.Flag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	if f.Kind == state.POSITION {
		return base.Background(p.Primary)
	}
	if f.On {
		return base.Background(p.Success)
	}
	return base.Background(p.MutedDark)
}
