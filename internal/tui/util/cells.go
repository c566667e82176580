package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cut returns the terminal columns [from, to) of s, padded with spaces so the
// result is exactly to-from cells wide. Wide runes split by a boundary are
// replaced by spaces. s must not contain escape sequences.
func Cut(s string, from, to int) string {
	if to <= from {
		return ""
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if col >= to {
			break
		}
		switch {
		case col >= from && col+w <= to:
			b.WriteRune(r)
		case col+w > from && col < to:
			// straddles an edge
			for i := max(col, from); i < min(col+w, to); i++ {
				b.WriteByte(' ')
			}
		}
		col += w
	}
	if col < from {
		col = from
	}
	if col < to {
		b.WriteString(strings.Repeat(" ", to-col))
	}
	return b.String()
}

// Pad fits s to exactly n cells, truncating or right-padding.
func Pad(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, n, ""), n)
}

// Bar draws a progress bar n cells wide for p in [0,1]; p outside is clamped.
func Bar(p float64, n int) string {
	if n <= 0 {
		return ""
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	full := int(p*float64(n) + 0.5)
	return strings.Repeat("█", full) + strings.Repeat("░", n-full)
}
