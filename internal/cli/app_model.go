package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/cli/formatter"
	"github.com/nmhoang/taskflow/internal/domain"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, the header and the status line.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient status line content, cleared on the next key press.
	status    string
	statusErr bool
}

func newAppModel(app *App, actor auth.Context) appModel {
	state := &SharedState{
		App:   app,
		Actor: actor,
	}
	m := appModel{state: state}

	// Start with the task dashboard as the home view.
	m.viewStack = []View{newDashboardView(state)}

	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.status = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case switchViewMsg:
		m.status = ""
		m.viewStack = []View{msg.view}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast so views below a closed form reload after mutations.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, nil
	}

	// Forward other messages (loaded data, ticks, cursor blink).
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	m.status = ""

	// Views with their own text input get every key first.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "1":
		if m.activeView().ID() != ViewDashboard {
			return m, switchView(newDashboardView(m.state))
		}
		return m, nil

	case "2":
		if m.activeView().ID() != ViewDocuments {
			return m, switchView(newDocumentsView(m.state))
		}
		return m, nil

	case "3":
		if m.activeView().ID() != ViewMembers {
			return m, switchView(newMembersView(m.state))
		}
		return m, nil
	}

	if msg.Type == tea.KeyEsc && len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StyleHeader.Render("taskflow")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	user := m.state.Actor.Name
	if m.state.Actor.Role == domain.RoleAdmin {
		user += " " + formatter.StyleGreen.Render("[admin]")
	}

	header := title + breadcrumb + "  " + formatter.Dim(user)
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.status != "" {
		if m.statusErr {
			hints = append(hints, formatter.StyleRed.Render(m.status))
		} else {
			hints = append(hints, formatter.StyleGreen.Render(m.status))
		}
	} else if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		hints = append(hints, formatter.Dim("1/2/3: switch"), formatter.Dim("q: quit"))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
