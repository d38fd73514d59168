package formatter

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Truncate shortens s to max runes, appending "…" when it was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// Pad right-pads s with spaces to the given display width.
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	out := []byte(s)
	for i := w; i < width; i++ {
		out = append(out, ' ')
	}
	return string(out)
}

// FormatDate renders a date as "02/01/2006", the display convention
// used throughout the dashboard.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDatePtr renders an optional date, "-" when unset.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatDate(*t)
}
