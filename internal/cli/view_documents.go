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

// docsLoadedMsg signals that the document list has been (re)loaded.
type docsLoadedMsg struct {
	docs []domain.Document
	err  error
}

// docMutatedMsg reports the outcome of a staged optimistic update.
type docMutatedMsg struct {
	ticket store.Ticket[domain.Document]
	err    error
}

// docOrderSavedMsg reports the outcome of persisting a reorder.
type docOrderSavedMsg struct {
	err error
}

// documentsView lists uploaded documents with the same grab-and-drop
// reordering and priority controls as the task grid.
type documentsView struct {
	state *SharedState

	docs   *store.Store[domain.Document]
	params view.Params
	grid   *drag.Coordinator

	search    textinput.Model
	searching bool

	cursor  int
	loading bool
	err     error
}

func newDocumentsView(state *SharedState) *documentsView {
	search := textinput.New()
	search.Placeholder = "tìm kiếm..."
	search.Prompt = "/ "
	search.CharLimit = 80

	return &documentsView{
		state:   state,
		docs:    store.New(func(d domain.Document) string { return d.ID }),
		params:  view.DefaultParams(),
		grid:    drag.NewCoordinator(nil),
		search:  search,
		loading: true,
	}
}

func (v *documentsView) ID() ViewID    { return ViewDocuments }
func (v *documentsView) Title() string { return "Documents" }

func (v *documentsView) CapturesInput() bool { return v.searching }

func (v *documentsView) ShortHelp() []key.Binding {
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
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *documentsView) Init() tea.Cmd {
	return v.loadDocs()
}

func (v *documentsView) loadDocs() tea.Cmd {
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		ptrs, err := app.Documents.List(context.Background(), actor)
		if err != nil {
			return docsLoadedMsg{err: err}
		}
		docs := make([]domain.Document, len(ptrs))
		for i, p := range ptrs {
			docs[i] = *p
		}
		return docsLoadedMsg{docs: docs}
	}
}

func (v *documentsView) visible() []domain.Document {
	p := v.params
	p.Query = v.search.Value()
	return view.Project(v.docs.Items(), p)
}

func (v *documentsView) clampCursor(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *documentsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case docsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.docs.Replace(msg.docs)
		v.clampCursor(len(v.visible()))
		return v, nil

	case docMutatedMsg:
		if msg.err != nil {
			v.docs.Rollback(msg.ticket)
			return v, setError(msg.err)
		}
		v.docs.Commit(msg.ticket)
		return v, nil

	case docOrderSavedMsg:
		if msg.err != nil {
			return v, tea.Batch(setError(msg.err), v.loadDocs())
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadDocs()

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

func (v *documentsView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *documentsView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	case "p":
		if v.cursor < len(visible) {
			return v, v.cyclePriority(visible[v.cursor].ID)
		}

	case "u":
		return v, pushView(newUploadFormView(v.state))

	case "x":
		if v.cursor < len(visible) {
			return v, v.deleteDoc(visible[v.cursor])
		}

	case "r":
		v.loading = true
		return v, v.loadDocs()
	}

	return v, nil
}

func (v *documentsView) moveCursor(to int) {
	if v.grid.Active() {
		v.grid.Leave(v.cursor)
		v.grid.Enter(to)
	}
	v.cursor = to
}

func (v *documentsView) applyReorder(visible []domain.Document, src, dst int) tea.Cmd {
	full := v.docs.Items()
	srcIdx, dstIdx := -1, -1
	for i, d := range full {
		if d.ID == visible[src].ID {
			srcIdx = i
		}
		if d.ID == visible[dst].ID {
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
	v.docs.Replace(moved)
	v.cursor = dst

	ranks := ordering.Reindex(moved, func(d domain.Document) string { return d.ID })
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		return docOrderSavedMsg{err: app.Documents.SaveOrder(context.Background(), actor, ranks)}
	}
}

func (v *documentsView) cyclePriority(id string) tea.Cmd {
	d, ok := v.docs.Get(id)
	if !ok {
		return nil
	}
	next := nextPriority(d.Priority)

	ticket, err := v.docs.StageUpdate(id, func(d *domain.Document) {
		d.Priority = next
	})
	if err != nil {
		return setError(err)
	}

	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		err := app.Documents.UpdatePriority(context.Background(), actor, id, next)
		return docMutatedMsg{ticket: ticket, err: err}
	}
}

func (v *documentsView) deleteDoc(d domain.Document) tea.Cmd {
	app := v.state.App
	actor := v.state.Actor
	return func() tea.Msg {
		if err := app.Documents.Delete(context.Background(), actor, d.ID); err != nil {
			return docMutatedMsg{err: err}
		}
		ptrs, err := app.Documents.List(context.Background(), actor)
		if err != nil {
			return docsLoadedMsg{err: err}
		}
		docs := make([]domain.Document, len(ptrs))
		for i, p := range ptrs {
			docs[i] = *p
		}
		return docsLoadedMsg{docs: docs}
	}
}

func (v *documentsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading documents...")
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
		b.WriteString("  " + formatter.Dim("Không có tài liệu nào.") + "\n")
		return b.String()
	}

	for i, d := range visible {
		b.WriteString(v.renderRow(d, i))
		b.WriteByte('\n')
	}
	return b.String()
}

func (v *documentsView) renderRow(d domain.Document, i int) string {
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

	name := formatter.Truncate(d.FileName, 42)
	if i == v.cursor {
		name = formatter.StyleBold.Render(name)
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		marker,
		formatter.FileTypeLabel(d.FileType),
		formatter.Pad(formatter.PriorityBadge(d.Priority), 10),
		name,
		formatter.Dim(d.UploadedBy+" · "+formatter.FormatDate(d.UploadedAt)),
	)
}

// newUploadFormView collects a file path and uploads it.
func newUploadFormView(state *SharedState) View {
	var path string
	form := pathForm("File to upload", &path)

	done := func() tea.Cmd {
		app := state.App
		actor := state.Actor
		return func() tea.Msg {
			f, err := os.Open(path)
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			defer f.Close()

			if _, err := app.Documents.Upload(context.Background(), actor, filepath.Base(path), f); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return refreshViewMsg{}
		}
	}

	return newFormView(state, "Upload Document", form, done)
}
