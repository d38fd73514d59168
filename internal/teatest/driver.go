// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the driver feeds messages through
// Update directly and resolves any returned Cmd on the spot, so model
// behavior can be asserted without goroutines or timing.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth caps recursive command resolution so a message loop
// cannot hang a test.
const maxDrainDepth = 100

// cmdTimeout separates real commands, which finish in microseconds,
// from cursor blink timers that block for around half a second.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when tea.QuitMsg appears while draining. The
	// bubbletea runtime normally swallows it, so the driver records
	// it explicitly.
	Quitting bool
}

// New wraps model in a driver and sends an initial window size.
// Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, width, height int) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	d.Model = updated
	return d
}

// DrainInit executes Init and every command it chains into.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// PressKey sends a single character key.
func (d *Driver) PressKey(r rune) {
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends a string one key event at a time.
func (d *Driver) Type(s string) {
	for _, r := range s {
		d.PressKey(r)
	}
}

// PressEnter sends the Enter key.
func (d *Driver) PressEnter() { d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }

// PressEsc sends the Escape key.
func (d *Driver) PressEsc() { d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() { d.Send(tea.KeyMsg{Type: tea.KeyCtrlC}) }

// PressUp sends the Up arrow key.
func (d *Driver) PressUp() { d.Send(tea.KeyMsg{Type: tea.KeyUp}) }

// PressDown sends the Down arrow key.
func (d *Driver) PressDown() { d.Send(tea.KeyMsg{Type: tea.KeyDown}) }

// PressSpace sends the space bar.
func (d *Driver) PressSpace() { d.PressKey(' ') }

// View returns the rendered output of the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", maxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
		return
	}

	if _, quit := msg.(tea.QuitMsg); quit {
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// runWithTimeout executes cmd and gives up after cmdTimeout, which
// skips blocking timer commands like cursor.BlinkCmd.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink detects the unexported blink messages from
// bubbles/cursor, which chain into blocking timer commands.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
