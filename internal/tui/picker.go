package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"sidedrawer/internal/config"
)

var (
	selStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "75"})
	faintStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
)

type pickerModel struct {
	list      []string
	cursor    int
	inputMode bool
	inputBuf  string
	suggest   []string
	picked    string
	cancelled bool
	msg       string
	// summary of the preset under the cursor
	preview string
}

// PickPreset opens a small TUI listing preset files and returns the chosen
// path. ok is false when the user quits without choosing.
func PickPreset(seed []string) (path string, ok bool, err error) {
	m := newPicker(seed)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, rerr := p.Run(); rerr != nil {
		return "", false, rerr
	}
	if m.cancelled || m.picked == "" {
		return "", false, nil
	}
	return m.picked, true, nil
}

// PresetFiles lists the preset-looking files in dir.
func PresetFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && isPresetName(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

func isPresetName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func newPicker(seed []string) *pickerModel {
	m := &pickerModel{list: append([]string{}, seed...)}
	m.refreshPreview()
	return m
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) addPath(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	p := expandPath(path)
	if _, err := os.Stat(p); err != nil {
		m.msg = fmt.Sprintf("! not found: %s", p)
		return
	}
	m.list = append(m.list, p)
	m.cursor = len(m.list) - 1
	m.inputBuf = ""
	m.msg = ""
	m.refreshPreview()
}

// refreshPreview loads the preset under the cursor so errors show before
// the user commits to it.
func (m *pickerModel) refreshPreview() {
	m.preview = ""
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return
	}
	p, err := config.Load(m.list[m.cursor])
	if err != nil {
		m.preview = "! " + err.Error()
		return
	}
	var parts []string
	if p.MenuPosition != "" {
		parts = append(parts, "menu "+p.MenuPosition)
	}
	if p.EdgeHitWidth != nil {
		parts = append(parts, fmt.Sprintf("edge %g", *p.EdgeHitWidth))
	}
	if p.AutoClosing != nil {
		parts = append(parts, fmt.Sprintf("autoClosing %v", *p.AutoClosing))
	}
	if p.BounceBackOnOverdraw != nil {
		parts = append(parts, fmt.Sprintf("bounceBack %v", *p.BounceBackOnOverdraw))
	}
	if p.Spring != nil {
		parts = append(parts, "custom spring")
	}
	if len(parts) == 0 {
		parts = append(parts, "defaults only")
	}
	m.preview = strings.Join(parts, ", ")
}

func (m *pickerModel) computeSuggestions() {
	in := m.inputBuf
	if strings.TrimSpace(in) == "" {
		m.suggest = nil
		return
	}
	expanded := in
	if strings.HasPrefix(in, "~") {
		expanded = expandPath(in)
	}
	dir := expanded
	base := ""
	if fi, err := os.Stat(expanded); err != nil || !fi.IsDir() {
		dir = filepath.Dir(expanded)
		base = filepath.Base(expanded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.suggest = nil
		return
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || isPresetName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if base != "" {
		// best fuzzy matches first
		var ranked []string
		for _, mt := range fuzzy.Find(base, names) {
			ranked = append(ranked, mt.Str)
		}
		names = ranked
	}
	var out []string
	for _, name := range names {
		cand := filepath.Join(dir, name)
		if h, _ := os.UserHomeDir(); h != "" && strings.HasPrefix(cand, h) {
			cand = "~" + strings.TrimPrefix(cand, h)
		}
		out = append(out, cand)
		if len(out) >= 8 {
			break
		}
	}
	m.suggest = out
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	s := strings.ToLower(k.String())
	if m.inputMode {
		switch s {
		case "enter":
			m.inputMode = false
			m.addPath(m.inputBuf)
		case "tab":
			if len(m.suggest) > 0 {
				m.inputBuf = m.suggest[0]
				m.computeSuggestions()
			}
		case "esc":
			m.inputMode = false
			m.inputBuf = ""
			m.suggest = nil
		default:
			if k.Type == tea.KeyBackspace || k.Type == tea.KeyCtrlH {
				if r := []rune(m.inputBuf); len(r) > 0 {
					m.inputBuf = string(r[:len(r)-1])
				}
			} else if k.Type == tea.KeyRunes {
				m.inputBuf += string(k.Runes)
			}
			m.computeSuggestions()
		}
		return m, nil
	}
	switch s {
	case "q", "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "a":
		m.inputMode = true
		m.inputBuf = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshPreview()
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
			m.refreshPreview()
		}
	case "x", "delete":
		if m.cursor >= 0 && m.cursor < len(m.list) {
			m.list = append(m.list[:m.cursor], m.list[m.cursor+1:]...)
			if m.cursor >= len(m.list) && m.cursor > 0 {
				m.cursor--
			}
			m.refreshPreview()
		}
	case "enter":
		if len(m.list) == 0 {
			m.msg = "! add a preset first (a)"
			return m, nil
		}
		if strings.HasPrefix(m.preview, "! ") {
			m.msg = m.preview
			return m, nil
		}
		m.picked = m.list[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Drawer Presets") + "\n\n")
	if m.msg != "" {
		b.WriteString(errStyle.Render(m.msg) + "\n")
	}
	if len(m.list) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, p := range m.list {
		line := "  " + p
		if i == m.cursor {
			line = selStyle.Render("> " + p)
		}
		b.WriteString(line + "\n")
	}
	if m.preview != "" {
		b.WriteString("\n" + faintStyle.Render("  "+m.preview) + "\n")
	}
	if m.inputMode {
		b.WriteString("\nAdd Path: " + m.inputBuf + "\n")
		for _, s := range m.suggest {
			b.WriteString(faintStyle.Render("  • ") + s + "\n")
		}
		b.WriteString("enter: add   tab: autocomplete   esc: cancel\n")
	} else {
		b.WriteString("\nKeys: a add  x delete  j/k move  enter use  q quit\n")
	}
	return b.String()
}
