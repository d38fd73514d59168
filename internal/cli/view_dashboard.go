package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmhoang/taskflow/internal/cli/formatter"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/drag"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/store"
	"github.com/nmhoang/taskflow/internal/view"
)

// ── messages ─────────────────────────────────────────────────────────────────

// tasksLoadedMsg signals that the task list has been (re)loaded.
type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

// taskMutatedMsg reports the outcome of a staged optimistic update.
type taskMutatedMsg struct {
	ticket store.Ticket[domain.Task]
	err    error
}

// taskOrderSavedMsg reports the outcome of persisting a reorder.
type taskOrderSavedMsg struct {
	err error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen: the reorderable task grid with
// live search, priority filter and sort controls.
type dashboardView struct {
	state *SharedState

	tasks  *store.Store[domain.Task]
	params view.Params
	grid   *drag.Coordinator

	search    textinput.Model
	searching bool

	cursor  int
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	search := textinput.New()
	search.Placeholder = "tìm kiếm..."
	search.Prompt = "/ "
	search.CharLimit = 80

	return &dashboardView{
		state:   state,
		tasks:   store.New(func(t domain.Task) string { return t.ID }),
		params:  view.DefaultParams(),
		grid:    drag.NewCoordinator(nil),
		search:  search,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Tasks" }

func (v *dashboardView) CapturesInput() bool { return v.searching }

func (v *dashboardView) ShortHelp() []key.Binding {
	if v.grid.Active() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "pick slot")),
			key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "grab")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadTasks()
}

func (v *dashboardView) loadTasks() tea.Cmd {
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		ptrs, err := app.Tasks.List(context.Background(), actor)
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: derefTasks(ptrs)}
	}
}

// visible returns the projection currently on screen. Reordering and
// cursor movement always work against this slice, never the raw store.
func (v *dashboardView) visible() []domain.Task {
	p := v.params
	p.Query = v.search.Value()
	return view.Project(v.tasks.Items(), p)
}

func (v *dashboardView) clampCursor(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.tasks.Replace(msg.tasks)
		v.clampCursor(len(v.visible()))
		return v, nil

	case taskMutatedMsg:
		if msg.err != nil {
			// The server refused: withdraw the staged value unless a
			// newer staged update superseded it.
			v.tasks.Rollback(msg.ticket)
			return v, setError(msg.err)
		}
		v.tasks.Commit(msg.ticket)
		return v, nil

	case taskOrderSavedMsg:
		if msg.err != nil {
			return v, tea.Batch(setError(msg.err), v.loadTasks())
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadTasks()

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

func (v *dashboardView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	case "f":
		v.params.Priority = nextPriorityFilter(v.params.Priority)
		v.clampCursor(len(v.visible()))
	case "s":
		v.params.Sort = nextSortOrder(v.params.Sort)

	case "p":
		if v.cursor < len(visible) {
			return v, v.cyclePriority(visible[v.cursor].ID)
		}

	case "a":
		return v, pushView(newTaskFormView(v.state, nil))

	case "enter":
		if v.cursor < len(visible) {
			t := visible[v.cursor]
			return v, pushView(newTaskFormView(v.state, &t))
		}

	case "x":
		if v.cursor < len(visible) {
			return v, v.deleteTask(visible[v.cursor])
		}

	case "r":
		v.loading = true
		return v, v.loadTasks()
	}

	return v, nil
}

// moveCursor relocates the selection and, mid-drag, the hover target.
func (v *dashboardView) moveCursor(to int) {
	if v.grid.Active() {
		v.grid.Leave(v.cursor)
		v.grid.Enter(to)
	}
	v.cursor = to
}

// applyReorder maps visible-row indices back to the full list, splices
// it, shows the new order immediately and persists it in the background.
func (v *dashboardView) applyReorder(visible []domain.Task, src, dst int) tea.Cmd {
	full := v.tasks.Items()
	srcIdx := indexOfTask(full, visible[src].ID)
	dstIdx := indexOfTask(full, visible[dst].ID)
	if srcIdx < 0 || dstIdx < 0 {
		return nil
	}

	moved, err := ordering.Reorder(full, srcIdx, dstIdx)
	if err != nil {
		return setError(err)
	}
	v.tasks.Replace(moved)
	v.cursor = dst

	ranks := ordering.Reindex(moved, func(t domain.Task) string { return t.ID })
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		return taskOrderSavedMsg{err: app.Tasks.SaveOrder(context.Background(), actor, ranks)}
	}
}

// cyclePriority stages the next priority optimistically and persists it.
func (v *dashboardView) cyclePriority(id string) tea.Cmd {
	t, ok := v.tasks.Get(id)
	if !ok {
		return nil
	}
	next := nextPriority(t.Priority)

	ticket, err := v.tasks.StageUpdate(id, func(t *domain.Task) {
		t.Priority = next
	})
	if err != nil {
		return setError(err)
	}

	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		err := app.Tasks.UpdatePriority(context.Background(), actor, id, next)
		return taskMutatedMsg{ticket: ticket, err: err}
	}
}

func (v *dashboardView) deleteTask(t domain.Task) tea.Cmd {
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		if err := app.Tasks.Delete(context.Background(), actor, t.ID); err != nil {
			return taskMutatedMsg{err: err}
		}
		ptrs, err := app.Tasks.List(context.Background(), actor)
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: derefTasks(ptrs)}
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading tasks...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")

	stats := formatter.CountTasks(v.tasks.Items())
	b.WriteString("  " + formatter.RenderProgress(stats) + "\n")
	b.WriteString("  " + formatter.RenderStats(stats) + "\n\n")
	b.WriteString(v.renderControls() + "\n\n")

	visible := v.visible()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("Không có công việc nào.") + "\n")
		return b.String()
	}

	for i, t := range visible {
		b.WriteString(v.renderRow(t, i))
		b.WriteByte('\n')
	}
	return b.String()
}

func (v *dashboardView) renderControls() string {
	if v.searching {
		return "  " + v.search.View()
	}

	filter := v.params.Priority
	if filter != domain.PriorityAll {
		filter = domain.PriorityLabels[domain.Priority(filter)]
	}
	parts := []string{
		formatter.Dim("lọc: ") + formatter.StyleFg.Render(filter),
		formatter.Dim("sắp xếp: ") + formatter.StyleFg.Render(sortLabel(v.params.Sort)),
	}
	if q := v.search.Value(); q != "" {
		parts = append(parts, formatter.Dim("tìm: ")+formatter.StyleYellow.Render(q))
	}
	return "  " + strings.Join(parts, "  ")
}

func (v *dashboardView) renderRow(t domain.Task, i int) string {
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

	title := t.Title
	if t.Priority == domain.PriorityDone {
		title = lipgloss.NewStyle().Strikethrough(true).Foreground(formatter.ColorDim).Render(title)
	} else if i == v.cursor {
		title = formatter.StyleBold.Render(title)
	}

	line := fmt.Sprintf("  %s%s  %s", marker, formatter.Pad(formatter.PriorityBadge(t.Priority), 10), title)
	if t.Assignee != "" {
		line += "  " + formatter.StyleBlue.Render("@"+t.Assignee)
	}
	if t.DueDate != nil {
		line += "  " + formatter.Dim("hạn "+formatter.FormatDate(*t.DueDate))
	}
	if len(t.Tags) > 0 {
		line += "  " + formatter.Dim("#"+strings.Join(t.Tags, " #"))
	}
	return line
}

// ── helpers ──────────────────────────────────────────────────────────────────

func indexOfTask(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func nextPriority(p domain.Priority) domain.Priority {
	switch p {
	case domain.PriorityUrgent:
		return domain.PriorityLater
	case domain.PriorityLater:
		return domain.PriorityDone
	default:
		return domain.PriorityUrgent
	}
}

func nextPriorityFilter(f string) string {
	switch f {
	case domain.PriorityAll:
		return string(domain.PriorityUrgent)
	case string(domain.PriorityUrgent):
		return string(domain.PriorityLater)
	case string(domain.PriorityLater):
		return string(domain.PriorityDone)
	default:
		return domain.PriorityAll
	}
}

func nextSortOrder(s domain.SortOrder) domain.SortOrder {
	switch s {
	case domain.SortPriority:
		return domain.SortDesc
	case domain.SortDesc:
		return domain.SortAsc
	default:
		return domain.SortPriority
	}
}

func sortLabel(s domain.SortOrder) string {
	switch s {
	case domain.SortAsc:
		return "cũ nhất"
	case domain.SortDesc:
		return "mới nhất"
	default:
		return "ưu tiên"
	}
}

// newTaskFormView builds the create/edit task form. A nil existing
// task means create.
func newTaskFormView(state *SharedState, existing *domain.Task) View {
	values := &taskFormValues{}
	title := "New Task"
	if existing != nil {
		values.fromTask(*existing)
		title = "Edit Task"
	}
	form := newTaskForm(values)

	done := func() tea.Cmd {
		app := state.App
		actor := state.Actor
		return func() tea.Msg {
			ctx := context.Background()
			t := values.toTask()
			if existing == nil {
				if err := app.Tasks.Create(ctx, actor, t); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
			} else {
				t.ID = existing.ID
				t.CreatedBy = existing.CreatedBy
				t.CreatedAt = existing.CreatedAt
				if err := app.Tasks.Update(ctx, actor, t); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
			}
			return refreshViewMsg{}
		}
	}

	return newFormView(state, title, form, done)
}
