package tui

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sidedrawer/internal/anim"
	"sidedrawer/internal/config"
	"sidedrawer/internal/drawer"
	"sidedrawer/internal/gesture"
	"sidedrawer/internal/tui/state"
	"sidedrawer/internal/tui/util"
	"sidedrawer/internal/tui/widgets/diff"
	"sidedrawer/internal/tui/widgets/helpoverlay"
	"sidedrawer/internal/tui/widgets/statusbar"
	"sidedrawer/internal/tui/widgets/tagchips"
)

// A terminal cell stands in for cellW x cellH points so that the
// point-based defaults (60pt edge band, 10pt tolerances) keep their feel.
const (
	cellW = 8.0
	cellH = 16.0

	// chips line above the body; status and key hints below
	chromeTop    = 1
	chromeBottom = 2
)

// Options configure the drawer demo.
type Options struct {
	Config   drawer.Config // effective settings, handlers are replaced
	Defaults drawer.Config // what the diff overlay compares against
	Spring   anim.SpringOptions
	NoMouse  bool
	NoColor  bool
	// Watch, when set, is a preset file reloaded whenever it changes.
	Watch string
	// Logf receives debug lines (drag samples, rebuilds). Nil discards.
	Logf func(format string, args ...any)
}

// Run starts the interactive drawer demo and blocks until the user quits.
func Run(o Options) error {
	m := newModel(o)
	if o.Watch != "" {
		w, err := watchPreset(o.Watch)
		if err != nil {
			return fmt.Errorf("watch preset: %w", err)
		}
		defer w.Close()
		m.watcher = w
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !o.NoMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}

type frameMsg struct{}

type model struct {
	opts Options
	cfg  drawer.Config // settings without handlers

	gestures bool
	ctrl     *drawer.Controller
	spring   *anim.Spring
	tracker  *gesture.Tracker
	ticking  bool

	keys   keyMap
	help   helpoverlay.HelpOverlay
	status statusbar.StatusBar
	diff   diff.DiffView
	ui     state.UIState

	copy    func(string) error
	watcher *presetWatcher
}

func newModel(o Options) *model {
	m := &model{
		opts:     o,
		cfg:      o.Config,
		gestures: !o.Config.DisableGestures.Active(),
		spring:   anim.NewSpring(o.Spring),
		keys:     defaultKeys(),
		help:     helpoverlay.NewHelpOverlay(),
		status:   statusbar.NewStatusBar(),
		diff:     diff.NewDiffView(),
		copy:     clipboard.WriteAll,
	}
	m.rebuild(o.Config.IsOpen)
	return m
}

func (m *model) logf(format string, args ...any) {
	if m.opts.Logf != nil {
		m.opts.Logf(format, args...)
	}
}

// wired returns the current settings with the demo's handlers attached.
func (m *model) wired() drawer.Config {
	c := m.cfg
	c.DisableGestures = drawer.When(func() bool { return !m.gestures })
	c.OnChange = func(open bool) { m.push("change " + openWord(open)) }
	c.OnAnimationComplete = func(open bool) { m.push("settled " + openWord(open)) }
	c.OnMove = func(v float64) { m.logf("drag offset=%.1f", v) }
	c.OnSliding = nil
	return c
}

// rebuild replaces the controller, e.g. after the menu changes sides.
// A running settle is finished first so the old controller reports it.
func (m *model) rebuild(open bool) {
	if m.ctrl != nil {
		m.spring.Finish()
		m.ctrl.Close()
	}
	c := m.wired()
	c.IsOpen = open
	m.ctrl = drawer.New(c, m.spring, m.bodyWidth(), m.bodyHeight())
	m.tracker = gesture.NewTracker(m.ctrl)
	m.tracker.OnReject = m.tap
	m.logf("controller rebuilt: position=%s open=%v", c.Position, open)
}

// tap closes an open drawer when the content beside the menu is clicked.
func (m *model) tap(x, _ float64) {
	if !m.ctrl.IsOpen() {
		return
	}
	lo, hi := m.ctrl.MenuBounds()
	if x >= lo && x < hi {
		return
	}
	if m.ctrl.Dismiss() {
		m.push("dismissed")
	}
}

func (m *model) push(ev string) {
	m.ui = state.PushEvent(m.ui, time.Now().Format("15:04:05")+" "+ev)
}

func openWord(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func (m *model) bodyRows() int {
	return max(m.ui.Height-chromeTop-chromeBottom, 0)
}

func (m *model) bodyWidth() float64  { return float64(m.ui.Width) * cellW }
func (m *model) bodyHeight() float64 { return float64(m.bodyRows()) * cellH }

func (m *model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		if m.ctrl.Geometry().Width == 0 && !m.ctrl.Dragging() && !m.ctrl.IsAnimating() {
			// built before the terminal size was known; anchor the offset at
			// the real open/hidden position
			m.rebuild(m.ctrl.IsOpen())
			break
		}
		m.ctrl.SetViewport(m.bodyWidth(), m.bodyHeight())
	case tea.MouseMsg:
		m.mouse(msg)
	case presetMsg:
		m.applyPreset(msg)
		m.sync()
		var next tea.Cmd
		if m.watcher != nil {
			next = m.watcher.wait()
		}
		return m, tea.Batch(next, m.maybeTick())
	case frameMsg:
		if m.spring.Step() {
			m.sync()
			return m, m.tick()
		}
		m.ticking = false
	case tea.KeyMsg:
		if quit := m.key(msg); quit {
			return m, tea.Quit
		}
	}
	m.sync()
	return m, m.maybeTick()
}

func (m *model) mouse(msg tea.MouseMsg) {
	// points at the cell center, body-relative
	x := (float64(msg.X) + 0.5) * cellW
	y := (float64(msg.Y-chromeTop) + 0.5) * cellH
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.tracker.Press(x, y)
	case tea.MouseActionMotion:
		m.tracker.Move(x, y)
	case tea.MouseActionRelease:
		m.tracker.Release(x, y)
	}
}

func (m *model) key(msg tea.KeyMsg) (quit bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
	case key.Matches(msg, m.keys.Diff):
		m.ui = state.ToggleDiff(m.ui)
	case key.Matches(msg, m.keys.Dismiss):
		switch {
		case m.ui.ShowHelp:
			m.ui = state.ToggleHelp(m.ui)
		case m.ui.ShowDiff:
			m.ui = state.ToggleDiff(m.ui)
		case m.ctrl.Dismiss():
			m.push("dismissed")
		}
	case key.Matches(msg, m.keys.Toggle):
		if !m.ctrl.Toggle() {
			m.ui = state.SetNotice(m.ui, "request ignored")
			return false
		}
	case key.Matches(msg, m.keys.Position):
		if m.cfg.Position == drawer.Left {
			m.cfg.Position = drawer.Right
		} else {
			m.cfg.Position = drawer.Left
		}
		m.tracker.Cancel()
		m.rebuild(m.ctrl.IsOpen())
		m.push("menu " + m.cfg.Position.String())
	case key.Matches(msg, m.keys.Overdraw):
		m.cfg.BounceBackOnOverdraw = !m.cfg.BounceBackOnOverdraw
		m.ctrl.SetConfig(m.wired())
	case key.Matches(msg, m.keys.AutoClose):
		m.cfg.AutoClosing = !m.cfg.AutoClosing
		m.ctrl.SetConfig(m.wired())
	case key.Matches(msg, m.keys.Gestures):
		m.gestures = !m.gestures
		if !m.gestures {
			m.tracker.Cancel()
		}
	case key.Matches(msg, m.keys.Copy):
		if err := m.copy(m.snapshot()); err != nil {
			m.ui = state.SetNotice(m.ui, "copy failed: "+err.Error())
			return false
		}
		m.ui = state.SetNotice(m.ui, "state copied")
		return false
	}
	m.ui = state.SetNotice(m.ui, "")
	return false
}

func (m *model) maybeTick() tea.Cmd {
	if m.ticking || !m.spring.Active() {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.spring.FPS()), func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *model) effective() drawer.Config {
	c := m.cfg
	c.DisableGestures = drawer.Always(!m.gestures)
	c.IsOpen = m.ctrl.IsOpen()
	return c
}

func (m *model) flags() []state.Flag {
	return []state.Flag{
		{Kind: state.POSITION, On: m.cfg.Position == drawer.Right},
		{Kind: state.BOUNCE, On: m.cfg.BounceBackOnOverdraw},
		{Kind: state.AUTO_CLOSE, On: m.cfg.AutoClosing},
		{Kind: state.GESTURES, On: m.gestures},
	}
}

func (m *model) sync() {
	d := state.DrawerView{
		Open:      m.ctrl.IsOpen(),
		Animating: m.ctrl.IsAnimating(),
		Dragging:  m.ctrl.Dragging(),
		Offset:    math.Abs(m.ctrl.Offset()) / cellW,
		Progress:  m.ctrl.Progress(),
		OpenAt:    m.ctrl.OpenMenuOffset() / cellW,
		Phase:     m.tracker.Phase().String(),
	}
	m.ui = state.Sync(m.ui, d, m.flags())
}

// snapshot is what the copy key puts on the clipboard.
func (m *model) snapshot() string {
	snap := struct {
		Open      bool           `json:"open"`
		Animating bool           `json:"animating"`
		Offset    float64        `json:"offset"`
		Progress  float64        `json:"progress"`
		Config    *config.Preset `json:"config"`
	}{
		Open:      m.ctrl.IsOpen(),
		Animating: m.ctrl.IsAnimating(),
		Offset:    m.ctrl.Offset(),
		Progress:  m.ctrl.Progress(),
		Config:    config.FromConfig(m.effective(), m.opts.Spring),
	}
	data, _ := json.MarshalIndent(snap, "", "  ")
	return string(data)
}

func (m *model) diffTexts() (before, after string) {
	b, err := config.Marshal(config.FromConfig(m.opts.Defaults, anim.SpringOptions{}), false)
	if err != nil {
		return err.Error(), ""
	}
	a, err := config.Marshal(config.FromConfig(m.effective(), m.opts.Spring), false)
	if err != nil {
		return string(b), err.Error()
	}
	return string(b), string(a)
}

func (m *model) View() string {
	if m.ui.Width == 0 {
		return "starting…"
	}
	var b strings.Builder
	b.WriteString(tagchips.View(m.ui.Flags, util.NoColor(m.opts.NoColor)))
	b.WriteString("\n")

	rows := m.bodyRows()
	var body []string
	switch {
	case m.ui.ShowHelp:
		body = strings.Split(m.help.View(m.ui, m.keys), "\n")
	case m.ui.ShowDiff:
		before, after := m.diffTexts()
		body = strings.Split(m.diff.View(m.ui, before, after), "\n")
	default:
		body = m.scene(rows)
	}
	for i := 0; i < rows; i++ {
		if i < len(body) {
			b.WriteString(body[i])
		}
		b.WriteString("\n")
	}
	b.WriteString(m.status.View(m.ui))
	b.WriteString("\n")
	b.WriteString(m.help.Short(m.ui.Width, m.keys))
	return b.String()
}

var menuItems = []string{"MENU", "", "  Home", "  Profile", "  Settings", "  About"}

func (m *model) contentLines() []string {
	lines := []string{
		"CONTENT",
		"",
		fmt.Sprintf("Drag from the %s edge to open the menu.", m.cfg.Position),
		"Click here while it is open to close it.",
		"",
		"Recent:",
	}
	for _, ev := range m.ui.Events {
		lines = append(lines, "  "+ev)
	}
	return lines
}

// scene draws the menu underneath the content panel, which is shifted by
// the live offset.
func (m *model) scene(rows int) []string {
	w := m.ui.Width
	// cells of menu revealed on its own side
	s := int(math.Round(m.ctrl.Offset() * m.ctrl.PositionMultiplier() / cellW))
	s = max(min(s, w), 0)
	openCells := int(math.Round(m.ctrl.OpenMenuOffset() / cellW))
	menuStyle, contentStyle := util.SceneStyles(util.NoColor(m.opts.NoColor))

	content := m.contentLines()
	out := make([]string, rows)
	for i := range out {
		var menu, text string
		if i < len(menuItems) {
			menu = menuItems[i]
		}
		if i < len(content) {
			text = content[i]
		}
		if m.cfg.Position == drawer.Left {
			// columns [0, s) reveal the menu
			out[i] = menuStyle.Render(util.Cut(menu, 0, s)) + contentStyle.Render(util.Cut(text, 0, w-s))
			continue
		}
		// right menu anchored to the right edge
		full := strings.Repeat(" ", max(w-openCells, 0)) + menu
		out[i] = contentStyle.Render(util.Cut(text, s, w)) + menuStyle.Render(util.Cut(full, w-s, w))
	}
	return out
}
