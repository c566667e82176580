package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const traceLines = 16

// TraceSummary heads the trace viewer.
type TraceSummary struct {
	Script string
	Steps  int
	Frames int
	Open   bool
	Offset float64
	Err    error
}

type traceModel struct {
	sum    TraceSummary
	lines  []string
	offset int // lines scrolled up from the bottom
	width  int
	status string
	// search state
	searching  bool
	searchBuf  string
	searchIdxs []int
	searchPos  int

	saveDir string
}

// ShowTrace opens a scrollable, searchable view of a replay trace.
func ShowTrace(sum TraceSummary, lines []string) error {
	m := &traceModel{sum: sum, lines: lines, saveDir: filepath.Join(".sidedrawer", "traces")}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *traceModel) Init() tea.Cmd { return nil }

func (m *traceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		k := strings.ToLower(v.String())
		if m.searching {
			switch k {
			case "enter":
				m.searching = false
				m.computeSearch()
				m.jumpToResult(0)
			case "esc":
				m.searching = false
				m.searchBuf = ""
				m.searchIdxs = nil
				m.searchPos = 0
			default:
				if v.Type == tea.KeyBackspace || v.Type == tea.KeyCtrlH {
					if r := []rune(m.searchBuf); len(r) > 0 {
						m.searchBuf = string(r[:len(r)-1])
					}
				} else if v.Type == tea.KeyRunes {
					m.searchBuf += string(v.Runes)
				}
			}
			return m, nil
		}
		switch v.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.offset < len(m.lines)-traceLines {
				m.offset++
			}
		case "j", "down":
			if m.offset > 0 {
				m.offset--
			}
		case "g":
			m.offset = max(len(m.lines)-traceLines, 0)
		case "G":
			m.offset = 0
		case "/":
			m.searching = true
			m.searchBuf = ""
		case "n":
			m.jumpToResult(m.searchPos + 1)
		case "N":
			m.jumpToResult(m.searchPos - 1)
		case "S":
			path, err := m.save()
			if err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "saved " + path
			}
		}
	case tea.WindowSizeMsg:
		if v.Width > 0 {
			m.width = v.Width
		}
	}
	return m, nil
}

func (m *traceModel) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Replay: "+m.sum.Script) + "\n")
	state := "closed"
	if m.sum.Open {
		state = "open"
	}
	fmt.Fprintf(&b, "    %-10s %d\n", "Steps:", m.sum.Steps)
	fmt.Fprintf(&b, "    %-10s %d\n", "Frames:", m.sum.Frames)
	fmt.Fprintf(&b, "    %-10s %s at %g\n", "Final:", state, m.sum.Offset)
	if m.sum.Err != nil {
		b.WriteString("    " + errStyle.Render("FAILED: "+m.sum.Err.Error()) + "\n")
	} else {
		b.WriteString("    " + selStyle.Render("all expectations met") + "\n")
	}
	status := ""
	if m.searching {
		status = "  /" + m.searchBuf
	} else if len(m.searchIdxs) > 0 {
		status = fmt.Sprintf("  [%d/%d]", m.searchPos+1, len(m.searchIdxs))
	}
	b.WriteString("(j/k scroll) (g/G top/bottom) (/) search (n/N) next (S) save (q) quit" + status + "\n")
	if strings.TrimSpace(m.status) != "" {
		b.WriteString(faintStyle.Render(m.status) + "\n")
	}

	start, end := m.window()
	avail := m.width
	if avail <= 0 {
		avail = 100
	}
	avail -= 4
	if avail < 20 {
		avail = 20
	}
	lines := make([]string, 0, end-start)
	for i, ln := range m.lines[start:end] {
		if r := []rune(ln); len(r) > avail {
			ln = string(r[:avail-1]) + "…"
		}
		lines = append(lines, m.highlight(ln, start+i))
	}
	if len(lines) == 0 {
		lines = append(lines, "(no events)")
	}
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
	b.WriteString(border.Render(strings.Join(lines, "\n")))
	return b.String()
}

// window is the [start, end) slice of lines currently shown.
func (m *traceModel) window() (int, int) {
	end := len(m.lines) - m.offset
	start := max(end-traceLines, 0)
	return start, end
}

// computeSearch indexes lines containing searchBuf, case-insensitive.
func (m *traceModel) computeSearch() {
	m.searchIdxs = nil
	m.searchPos = 0
	q := strings.ToLower(strings.TrimSpace(m.searchBuf))
	if q == "" {
		return
	}
	for i, ln := range m.lines {
		if strings.Contains(strings.ToLower(ln), q) {
			m.searchIdxs = append(m.searchIdxs, i)
		}
	}
}

func (m *traceModel) jumpToResult(pos int) {
	if len(m.searchIdxs) == 0 {
		return
	}
	if pos < 0 {
		pos = len(m.searchIdxs) - 1
	}
	if pos >= len(m.searchIdxs) {
		pos = 0
	}
	m.searchPos = pos
	// the match becomes the last visible line
	m.offset = max(len(m.lines)-(m.searchIdxs[pos]+1), 0)
}

var highlightStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "228", Dark: "94"}).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})

func (m *traceModel) highlight(s string, idx int) string {
	q := strings.ToLower(strings.TrimSpace(m.searchBuf))
	if q == "" || !containsIndex(m.searchIdxs, idx) {
		return s
	}
	// trace lines are ASCII, byte offsets are safe
	lower := strings.ToLower(s)
	var b strings.Builder
	for {
		p := strings.Index(lower, q)
		if p < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:p])
		b.WriteString(highlightStyle.Render(s[p : p+len(q)]))
		s, lower = s[p+len(q):], lower[p+len(q):]
	}
	return b.String()
}

func containsIndex(a []int, x int) bool {
	for _, v := range a {
		if v == x {
			return true
		}
	}
	return false
}

func (m *traceModel) save() (string, error) {
	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(m.saveDir, time.Now().Format("20060102_150405")+".log")
	return path, os.WriteFile(path, []byte(strings.Join(m.lines, "\n")+"\n"), 0644)
}
