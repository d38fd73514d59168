package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmhoang/taskflow/internal/cli/formatter"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/drag"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/store"
	"github.com/nmhoang/taskflow/internal/view"
)

// membersLoadedMsg signals that the member list has been (re)loaded.
type membersLoadedMsg struct {
	members []domain.Member
	err     error
}

// memberMutatedMsg reports the outcome of a member mutation.
type memberMutatedMsg struct {
	err error
}

// memberOrderSavedMsg reports the outcome of persisting a reorder.
type memberOrderSavedMsg struct {
	err error
}

// membersView lists unit members with search, attachments and the
// grab-and-drop reordering shared with the other grids.
type membersView struct {
	state *SharedState

	members *store.Store[domain.Member]
	grid    *drag.Coordinator

	search    textinput.Model
	searching bool

	cursor  int
	loading bool
	err     error
}

func newMembersView(state *SharedState) *membersView {
	search := textinput.New()
	search.Placeholder = "tìm theo tên, đơn vị..."
	search.Prompt = "/ "
	search.CharLimit = 80

	return &membersView{
		state:   state,
		members: store.New(func(m domain.Member) string { return m.ID }),
		grid:    drag.NewCoordinator(nil),
		search:  search,
		loading: true,
	}
}

func (v *membersView) ID() ViewID    { return ViewMembers }
func (v *membersView) Title() string { return "Members" }

func (v *membersView) CapturesInput() bool { return v.searching }

func (v *membersView) ShortHelp() []key.Binding {
	if v.grid.Active() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "pick slot")),
			key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "grab")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "attach")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *membersView) Init() tea.Cmd {
	return v.loadMembers()
}

func (v *membersView) loadMembers() tea.Cmd {
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		ptrs, err := app.Members.List(context.Background(), actor)
		if err != nil {
			return membersLoadedMsg{err: err}
		}
		members := make([]domain.Member, len(ptrs))
		for i, p := range ptrs {
			members[i] = *p
		}
		return membersLoadedMsg{members: members}
	}
}

// Members carry no priority, so only the query filter applies.
func (v *membersView) visible() []domain.Member {
	p := view.Params{
		Query:    v.search.Value(),
		Priority: domain.PriorityAll,
		Sort:     domain.SortPriority,
	}
	return view.Project(v.members.Items(), p)
}

func (v *membersView) clampCursor(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *membersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case membersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.members.Replace(msg.members)
		v.clampCursor(len(v.visible()))
		return v, nil

	case memberMutatedMsg:
		if msg.err != nil {
			return v, setError(msg.err)
		}
		v.loading = true
		return v, v.loadMembers()

	case memberOrderSavedMsg:
		if msg.err != nil {
			return v, tea.Batch(setError(msg.err), v.loadMembers())
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadMembers()

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *membersView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		return v, nil
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.clampCursor(len(v.visible()))
	return v, cmd
}

func (v *membersView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visible()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.moveCursor(v.cursor - 1)
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.moveCursor(v.cursor + 1)
		}

	case " ":
		if len(visible) == 0 {
			return v, nil
		}
		if !v.grid.Active() {
			v.grid.Begin(v.cursor)
			v.grid.Lift()
			return v, nil
		}
		if src, dst, ok := v.grid.Drop(v.cursor); ok {
			return v, v.applyReorder(visible, src, dst)
		}
		return v, nil

	case "esc":
		if v.grid.Active() {
			v.grid.Cancel()
			return v, nil
		}
		if v.search.Value() != "" {
			v.search.SetValue("")
			return v, nil
		}

	case "/":
		v.searching = true
		return v, v.search.Focus()

	case "a":
		return v, pushView(newMemberFormView(v.state))

	case "t":
		if v.cursor < len(visible) {
			return v, pushView(newAttachFormView(v.state, visible[v.cursor]))
		}

	case "x":
		if v.cursor < len(visible) {
			return v, v.deleteMember(visible[v.cursor])
		}

	case "r":
		v.loading = true
		return v, v.loadMembers()
	}

	return v, nil
}

func (v *membersView) moveCursor(to int) {
	if v.grid.Active() {
		v.grid.Leave(v.cursor)
		v.grid.Enter(to)
	}
	v.cursor = to
}

func (v *membersView) applyReorder(visible []domain.Member, src, dst int) tea.Cmd {
	full := v.members.Items()
	srcIdx, dstIdx := -1, -1
	for i, m := range full {
		if m.ID == visible[src].ID {
			srcIdx = i
		}
		if m.ID == visible[dst].ID {
			dstIdx = i
		}
	}
	if srcIdx < 0 || dstIdx < 0 {
		return nil
	}

	moved, err := ordering.Reorder(full, srcIdx, dstIdx)
	if err != nil {
		return setError(err)
	}
	v.members.Replace(moved)
	v.cursor = dst

	ranks := ordering.Reindex(moved, func(m domain.Member) string { return m.ID })
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		return memberOrderSavedMsg{err: app.Members.SaveOrder(context.Background(), actor, ranks)}
	}
}

func (v *membersView) deleteMember(m domain.Member) tea.Cmd {
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		return memberMutatedMsg{err: app.Members.Delete(context.Background(), actor, m.ID)}
	}
}

func (v *membersView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading members...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.searching {
		b.WriteString("  " + v.search.View() + "\n\n")
	}

	visible := v.visible()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("Không có thành viên nào.") + "\n")
		return b.String()
	}

	for i, m := range visible {
		b.WriteString(v.renderRow(m, i))
		b.WriteByte('\n')
	}
	return b.String()
}

func (v *membersView) renderRow(m domain.Member, i int) string {
	marker := "  "
	switch v.grid.StateOf(i) {
	case drag.StateDragging, drag.StatePreviewing:
		marker = formatter.StyleYellow.Render("≡ ")
	case drag.StateOver:
		marker = formatter.StyleHeader.Render("▶ ")
	default:
		if i == v.cursor {
			marker = formatter.StyleGreen.Render("▸ ")
		}
	}

	name := m.Name
	if i == v.cursor {
		name = formatter.StyleBold.Render(name)
	}

	line := fmt.Sprintf("  %s%s  %s", marker, formatter.Pad(name, 28), m.Unit)
	if m.Team != "" {
		line += "  " + formatter.Dim(m.Team)
	}
	line += "  " + formatter.Dim(formatter.FormatDate(m.DateOfBirth))
	if m.FileName != "" {
		line += "  " + formatter.StyleBlue.Render("📎 "+formatter.Truncate(m.FileName, 24))
	}
	return line
}

// newMemberFormView builds the create member form.
func newMemberFormView(state *SharedState) View {
	values := &memberFormValues{}
	form := newMemberForm(values)

	done := func() tea.Cmd {
		app := state.App
		actor := state.Actor
		return func() tea.Msg {
			if err := app.Members.Create(context.Background(), actor, values.toMember()); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return refreshViewMsg{}
		}
	}

	return newFormView(state, "New Member", form, done)
}

// newAttachFormView collects a file path and attaches it to a member.
func newAttachFormView(state *SharedState, m domain.Member) View {
	var path string
	form := pathForm(fmt.Sprintf("File to attach to %s", m.Name), &path)

	done := func() tea.Cmd {
		app := state.App
		actor := state.Actor
		return func() tea.Msg {
			f, err := os.Open(path)
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			defer f.Close()

			if err := app.Members.Attach(context.Background(), actor, m.ID, filepath.Base(path), f); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return refreshViewMsg{}
		}
	}

	return newFormView(state, "Attach File", form, done)
}
