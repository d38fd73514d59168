package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// switchViewMsg replaces the whole stack with a single top-level view.
type switchViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// statusMsg sets the transient status line at the bottom of the screen.
type statusMsg struct {
	text  string
	isErr bool
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// switchView returns a tea.Cmd that replaces the stack with v.
func switchView(v View) tea.Cmd {
	return func() tea.Msg { return switchViewMsg{view: v} }
}

// refreshViews returns a tea.Cmd that broadcasts a reload.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// setStatus returns a tea.Cmd that shows an informational status line.
func setStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// setError returns a tea.Cmd that shows an error status line.
func setError(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isErr: true} }
}
