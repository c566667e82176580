package tui

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sidedrawer/internal/drawer"
)

func newTestModel(t *testing.T, mutate func(*drawer.Config)) *model {
	t.Helper()
	cfg := drawer.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	m := newModel(Options{Config: cfg, Defaults: drawer.DefaultConfig(), NoColor: true})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func settle(t *testing.T, m *model) {
	t.Helper()
	for i := 0; m.spring.Active(); i++ {
		if i > 2000 {
			t.Fatalf("spring never settled")
		}
		m.Update(frameMsg{})
	}
}

func TestViewportInPoints(t *testing.T) {
	m := newTestModel(t, nil)
	g := m.ctrl.Geometry()
	if g.Width != 640 || g.Height != 21*16 {
		t.Fatalf("unexpected geometry %+v", g)
	}
}

func TestStartsOpenAtOpenOffset(t *testing.T) {
	m := newTestModel(t, func(c *drawer.Config) { c.IsOpen = true })
	if !m.ctrl.IsOpen() || m.ctrl.Offset() == 0 || m.ctrl.Offset() != m.ctrl.OpenMenuOffset() {
		t.Fatalf("open at start but offset %v, open offset %v", m.ctrl.Offset(), m.ctrl.OpenMenuOffset())
	}
	if !strings.Contains(m.View(), "Settings") {
		t.Fatalf("menu should be drawn at start")
	}

	// dragging toward the edge closes it without crossing to the far side
	m.Update(mouse(tea.MouseActionPress, 60, 5))
	m.Update(mouse(tea.MouseActionMotion, 55, 5))
	m.Update(mouse(tea.MouseActionMotion, 10, 5))
	if !m.ctrl.Dragging() || m.ctrl.Offset() < 0 {
		t.Fatalf("close drag moved the menu to %v", m.ctrl.Offset())
	}
	m.Update(mouse(tea.MouseActionRelease, 10, 5))
	settle(t, m)
	if m.ctrl.IsOpen() || m.ctrl.Offset() != 0 {
		t.Fatalf("expected closed at 0, got open=%v offset=%v", m.ctrl.IsOpen(), m.ctrl.Offset())
	}
}

func TestEdgeDragOpensAndTapCloses(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(mouse(tea.MouseActionPress, 0, 5))
	m.Update(mouse(tea.MouseActionMotion, 3, 5))
	if !m.ctrl.Dragging() {
		t.Fatalf("edge swipe should be claimed, phase=%s", m.tracker.Phase())
	}
	m.Update(mouse(tea.MouseActionMotion, 30, 5))
	_, cmd := m.Update(mouse(tea.MouseActionRelease, 30, 5))
	if !m.ctrl.IsOpen() || cmd == nil {
		t.Fatalf("release past the barrier should open and start ticking (open=%v)", m.ctrl.IsOpen())
	}
	settle(t, m)
	if math.Abs(m.ctrl.Offset()-m.ctrl.OpenMenuOffset()) > 1e-9 || m.ctrl.IsAnimating() {
		t.Fatalf("expected settled open, offset=%v", m.ctrl.Offset())
	}
	v := m.View()
	if !strings.Contains(v, "[OPEN]") || !strings.Contains(v, "Settings") {
		t.Fatalf("open view missing status or menu:\n%s", v)
	}

	// a tap on the menu itself keeps it open
	m.Update(mouse(tea.MouseActionPress, 5, 6))
	m.Update(mouse(tea.MouseActionRelease, 5, 6))
	if !m.ctrl.IsOpen() {
		t.Fatalf("tap on menu should not close")
	}
	m.Update(mouse(tea.MouseActionPress, 70, 6))
	m.Update(mouse(tea.MouseActionRelease, 70, 6))
	if m.ctrl.IsOpen() {
		t.Fatalf("tap on content should close")
	}
	settle(t, m)
	if m.ctrl.Offset() != 0 || !strings.Contains(m.View(), "[CLOSED]") {
		t.Fatalf("expected closed at 0, got %v", m.ctrl.Offset())
	}
	found := false
	for _, ev := range m.ui.Events {
		if strings.HasSuffix(ev, "dismissed") {
			found = true
		}
	}
	if !found {
		t.Fatalf("dismiss not recorded: %v", m.ui.Events)
	}
}

func TestMidScreenDragIgnoredWhenClosed(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(mouse(tea.MouseActionPress, 40, 5))
	m.Update(mouse(tea.MouseActionMotion, 60, 5))
	m.Update(mouse(tea.MouseActionRelease, 60, 5))
	if m.ctrl.IsOpen() || m.ctrl.Offset() != 0 {
		t.Fatalf("drag away from the edge must not move the drawer")
	}
}

func TestToggleKeyAndRightMenu(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(runes("p"))
	if m.ctrl.Config().Position != drawer.Right {
		t.Fatalf("p should flip the menu to the right")
	}
	m.Update(runes("o"))
	settle(t, m)
	if !m.ctrl.IsOpen() || m.ctrl.Offset() >= 0 {
		t.Fatalf("right menu should open to a negative offset, got %v", m.ctrl.Offset())
	}
	v := m.View()
	if !strings.Contains(v, "[Menu right]") {
		t.Fatalf("chips should show the right menu:\n%s", v)
	}
	lines := strings.Split(v, "\n")
	// body row 2 is "Home"; the menu starts 53 cells in from the right
	if row := lines[1+2]; strings.Index(row, "Home") < 80-53 {
		t.Fatalf("menu should be drawn on the right: %q", row)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	settle(t, m)
	if m.ctrl.IsOpen() {
		t.Fatalf("esc should dismiss")
	}
}

func TestAutoClosingOffIgnoresToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(runes("a"))
	m.Update(runes("o"))
	settle(t, m)
	m.Update(runes("o"))
	if !m.ctrl.IsOpen() || m.ui.Notice != "request ignored" {
		t.Fatalf("close request should be ignored with auto-closing off (notice %q)", m.ui.Notice)
	}
}

func TestGesturesKeyDisablesDrag(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(runes("g"))
	m.Update(mouse(tea.MouseActionPress, 0, 5))
	m.Update(mouse(tea.MouseActionMotion, 30, 5))
	m.Update(mouse(tea.MouseActionRelease, 30, 5))
	if m.ctrl.IsOpen() {
		t.Fatalf("gestures are disabled")
	}
	if !strings.Contains(m.View(), "[Gestures off]") {
		t.Fatalf("chip should reflect disabled gestures")
	}
}

func TestCopySnapshot(t *testing.T) {
	m := newTestModel(t, nil)
	var got string
	m.copy = func(s string) error { got = s; return nil }
	m.Update(runes("o"))
	m.Update(runes("y"))
	if !strings.Contains(got, `"open": true`) || !strings.Contains(got, `"menuPosition": "left"`) {
		t.Fatalf("unexpected snapshot:\n%s", got)
	}
	if m.ui.Notice != "state copied" {
		t.Fatalf("notice = %q", m.ui.Notice)
	}
	m.copy = func(string) error { return errors.New("no clipboard") }
	m.Update(runes("y"))
	if !strings.Contains(m.ui.Notice, "no clipboard") {
		t.Fatalf("notice = %q", m.ui.Notice)
	}
}

func TestDiffOverlayShowsChangedSetting(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(runes("b"))
	m.Update(runes("d"))
	v := m.View()
	if !strings.Contains(v, "bounceBackOnOverdraw") {
		t.Fatalf("diff overlay should list the changed setting:\n%s", v)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ui.ShowDiff {
		t.Fatalf("esc should close the overlay first")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatalf("q should quit")
	}
}
