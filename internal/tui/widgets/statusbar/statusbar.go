package statusbar

import (
	"fmt"
	"strings"

	"sidedrawer/internal/tui/state"
	"sidedrawer/internal/tui/util"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting drawer and UI state.
func (StatusBar) View(s state.UIState) string {
	d := s.Drawer
	mode := "[CLOSED]"
	if d.Open {
		mode = "[OPEN]"
	}
	motion := "idle"
	switch {
	case d.Dragging:
		motion = "drag"
	case d.Animating:
		motion = "settle"
	}
	pos := fmt.Sprintf("off:%.0f/%.0f", d.Offset, d.OpenAt)
	prog := fmt.Sprintf("%s %3.0f%%", util.Bar(d.Progress, 10), d.Progress*100)
	size := fmt.Sprintf("W:%d H:%d", s.Width, s.Height)

	parts := []string{mode, motion, pos, prog, size}
	if d.Phase != "" && d.Phase != "idle" {
		parts = append(parts, "ptr:"+d.Phase)
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
