package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"sidedrawer/internal/tui/state"
)

type HelpOverlay struct {
	h help.Model
}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{h: help.New()} }

// View returns the full key help plus the gesture cheat sheet, with the
// current drawer state indicated.
func (o HelpOverlay) View(s state.UIState, km help.KeyMap) string {
	st := "closed"
	if s.Drawer.Open {
		st = "open"
	}
	h := o.h
	h.Width = s.Width
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Drawer: %s)\n\n", st)
	b.WriteString(h.FullHelpView(km.FullHelp()))
	b.WriteString("\n\nGestures:\n")
	for _, g := range []string{
		"drag from the menu edge inward: open",
		"drag anywhere while open: close",
		"release past a quarter of the screen: stays open",
		"click the content while open: close",
	} {
		fmt.Fprintf(&b, "  %s\n", g)
	}
	return b.String()
}

// Short renders the one-line key hint.
func (o HelpOverlay) Short(width int, km help.KeyMap) string {
	h := o.h
	h.Width = width
	return h.ShortHelpView(km.ShortHelp())
}
