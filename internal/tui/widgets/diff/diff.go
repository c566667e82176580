package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"sidedrawer/internal/tui/state"
	"sidedrawer/internal/tui/util"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	diffAddChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint       = lipgloss.NewStyle().Faint(true)
)

// sideBySideMin is the narrowest terminal that gets two columns.
const sideBySideMin = 100

type DiffView struct {
	Before string // column titles
	After  string
}

func NewDiffView() DiffView { return DiffView{Before: "DEFAULTS", After: "EFFECTIVE"} }

// View renders before vs after. Wide terminals get two columns, everything
// else a unified listing. Changed lines carry char-level highlights.
func (v DiffView) View(s state.UIState, before, after string) string {
	if before == after {
		return "No changes\n"
	}
	if s.Width >= sideBySideMin {
		return v.sideBySide(before, after, (s.Width-5)/2)
	}
	return v.unified(before, after)
}

func charDiffs(a, b string) []dmp.Diff {
	d := dmp.New()
	diffs := d.DiffMain(a, b, false)
	return d.DiffCleanupSemantic(diffs)
}

// lineDiffs pairs lines by a line-mode diff so inserted or removed keys do
// not shift every following line out of alignment.
func lineDiffs(before, after string) []dmp.Diff {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffMain(a, b, false)
	return d.DiffCharsToLines(diffs, lines)
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

type pair struct {
	del, add string
	hasDel   bool
	hasAdd   bool
}

// pairs walks the line diff and matches each deleted line with the next
// inserted one.
func pairs(before, after string) []pair {
	var out []pair
	var dels []string
	flush := func() {
		for _, l := range dels {
			out = append(out, pair{del: l, hasDel: true})
		}
		dels = nil
	}
	for _, df := range lineDiffs(before, after) {
		switch df.Type {
		case dmp.DiffEqual:
			flush()
			for _, l := range splitLines(df.Text) {
				out = append(out, pair{del: l, add: l, hasDel: true, hasAdd: true})
			}
		case dmp.DiffDelete:
			flush()
			dels = splitLines(df.Text)
		case dmp.DiffInsert:
			for _, l := range splitLines(df.Text) {
				if len(dels) > 0 {
					out = append(out, pair{del: dels[0], add: l, hasDel: true, hasAdd: true})
					dels = dels[1:]
					continue
				}
				out = append(out, pair{add: l, hasAdd: true})
			}
		}
	}
	flush()
	return out
}

func render(diffs []dmp.Diff, keep dmp.Operation, line, char lipgloss.Style) string {
	var b strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case keep:
			b.WriteString(char.Render(df.Text))
		case dmp.DiffEqual:
			b.WriteString(line.Render(df.Text))
		}
	}
	return b.String()
}

func (v DiffView) unified(before, after string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s vs %s (Unified)\n", v.Before, v.After)
	for _, p := range pairs(before, after) {
		switch {
		case p.hasDel && p.hasAdd && p.del == p.add:
			sb.WriteString("  " + faint.Render(p.del) + "\n")
		case p.hasDel && p.hasAdd:
			diffs := charDiffs(p.del, p.add)
			sb.WriteString(diffDelLine.Render("- ") + render(diffs, dmp.DiffDelete, diffDelLine, diffDelChar) + "\n")
			sb.WriteString(diffAddLine.Render("+ ") + render(diffs, dmp.DiffInsert, diffAddLine, diffAddChar) + "\n")
		case p.hasDel:
			sb.WriteString(diffDelLine.Render("- "+p.del) + "\n")
		default:
			sb.WriteString(diffAddLine.Render("+ "+p.add) + "\n")
		}
	}
	return sb.String()
}

func (v DiffView) sideBySide(before, after string, colWidth int) string {
	const sep = " │ "
	if colWidth < 10 {
		colWidth = 10
	}
	var sb strings.Builder
	sb.WriteString(util.Pad(v.Before, colWidth) + sep + v.After + "\n")
	for _, p := range pairs(before, after) {
		l, r := util.Pad(p.del, colWidth), util.Pad(p.add, colWidth)
		switch {
		case p.hasDel && p.hasAdd && p.del == p.add:
			sb.WriteString(faint.Render(l) + sep + faint.Render(r) + "\n")
		case p.hasDel && p.hasAdd:
			// clip first, then highlight, so escape codes are never cut
			diffs := charDiffs(l, r)
			sb.WriteString(render(diffs, dmp.DiffDelete, diffDelLine, diffDelChar) + sep +
				render(diffs, dmp.DiffInsert, diffAddLine, diffAddChar) + "\n")
		case p.hasDel:
			sb.WriteString(diffDelLine.Render(l) + sep + strings.Repeat(" ", colWidth) + "\n")
		default:
			sb.WriteString(strings.Repeat(" ", colWidth) + sep + diffAddLine.Render(r) + "\n")
		}
	}
	return sb.String()
}
