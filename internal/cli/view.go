package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewDocuments
	ViewMembers
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that temporarily own the
// keyboard (an open search box, a form) and must receive every key
// before global bindings run.
type inputCapturer interface {
	CapturesInput() bool
}

func viewCapturesInput(v View) bool {
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return v.ID() == ViewForm
}
