package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmhoang/taskflow/internal/auth"
)

// RunTUI starts the interactive dashboard for a signed-in actor and
// blocks until the user quits.
func RunTUI(app *App, actor auth.Context) error {
	p := tea.NewProgram(newAppModel(app, actor), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
