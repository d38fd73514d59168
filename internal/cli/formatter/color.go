package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nmhoang/taskflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders s in the muted foreground color.
func Dim(s string) string { return StyleDim.Render(s) }

// PriorityStyle returns the style for a priority badge.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed
	case domain.PriorityLater:
		return StyleYellow
	case domain.PriorityDone:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PriorityBadge renders the colored display label for a priority,
// e.g. "● KHẨN".
func PriorityBadge(p domain.Priority) string {
	label, ok := domain.PriorityLabels[p]
	if !ok {
		label = string(p)
	}
	return PriorityStyle(p).Render("● " + label)
}

// FileTypeLabel renders the short type tag shown next to a document.
func FileTypeLabel(ft domain.FileType) string {
	if ft == domain.FilePDF {
		return StyleRed.Render("[PDF]")
	}
	return StyleBlue.Render("[DOC]")
}
