// Package drag tracks transient drag state for one reorderable
// collection, independent of the data being displayed. It is a finite
// state machine driven by abstract pointer-gesture events, so any front
// end (TUI grab mode, pointer adapters) can feed it.
package drag

// State is the drag state of a single item slot.
type State int

const (
	// StateIdle: not involved in the current gesture.
	StateIdle State = iota
	// StatePreviewing: a drag image is being rendered for the source.
	StatePreviewing
	// StateDragging: the source item is in flight.
	StateDragging
	// StateOver: this slot is a hovered, compatible drop target.
	StateOver
)

func (s State) String() string {
	switch s {
	case StatePreviewing:
		return "previewing"
	case StateDragging:
		return "dragging"
	case StateOver:
		return "over"
	default:
		return "idle"
	}
}

const noSource = -1

// Coordinator runs the gesture state machine for one collection.
// At most one gesture is active at a time; independent collections each
// run their own Coordinator.
type Coordinator struct {
	onReorder func(src, dst int)

	source      int
	sourceState State
	overTarget  int
	cursorGrab  bool
}

// NewCoordinator creates an idle coordinator. onReorder receives the
// (sourceIndex, destinationIndex) pair of a completed drop; it may be
// nil for callers that poll Drop's return instead.
func NewCoordinator(onReorder func(src, dst int)) *Coordinator {
	return &Coordinator{
		onReorder:  onReorder,
		source:     noSource,
		overTarget: noSource,
	}
}

// Active reports whether a gesture is in progress.
func (c *Coordinator) Active() bool { return c.source != noSource }

// Source returns the index being dragged, or -1.
func (c *Coordinator) Source() int { return c.source }

// CursorGrabbed reports the gesture-scoped cursor affordance. It spans
// the whole drag, not individual items, and resets on drop or cancel.
func (c *Coordinator) CursorGrabbed() bool { return c.cursorGrab }

// StateOf returns the state of the item at index under the current
// gesture.
func (c *Coordinator) StateOf(index int) State {
	switch {
	case index == c.source:
		return c.sourceState
	case index == c.overTarget:
		return StateOver
	default:
		return StateIdle
	}
}

// Begin starts a gesture on the item at index: idle -> previewing.
// Ignored while another gesture is active.
func (c *Coordinator) Begin(index int) bool {
	if c.Active() || index < 0 {
		return false
	}
	c.source = index
	c.sourceState = StatePreviewing
	c.cursorGrab = true
	return true
}

// Lift marks the drag preview as handed off: previewing -> dragging.
func (c *Coordinator) Lift() bool {
	if c.sourceState != StatePreviewing {
		return false
	}
	c.sourceState = StateDragging
	return true
}

// Enter marks index as the hovered drop target. The source itself is
// not a compatible target, and nothing happens without an active drag.
func (c *Coordinator) Enter(index int) bool {
	if !c.Active() || index == c.source || index < 0 {
		return false
	}
	c.overTarget = index
	return true
}

// Leave clears the hovered target: over -> idle.
func (c *Coordinator) Leave(index int) {
	if c.overTarget == index {
		c.overTarget = noSource
	}
}

// Drop completes the gesture over the item at index. A valid drop emits
// (source, index) through the reorder callback and returns it; a
// self-drop or a drop with no active gesture emits nothing. Either way
// the gesture ends and the cursor affordance resets.
func (c *Coordinator) Drop(index int) (src, dst int, ok bool) {
	if !c.Active() || index == c.source || index < 0 {
		c.reset()
		return 0, 0, false
	}
	src, dst = c.source, index
	c.reset()
	if c.onReorder != nil {
		c.onReorder(src, dst)
	}
	return src, dst, true
}

// Cancel aborts the gesture unconditionally.
func (c *Coordinator) Cancel() {
	c.reset()
}

func (c *Coordinator) reset() {
	c.source = noSource
	c.sourceState = StateIdle
	c.overTarget = noSource
	c.cursorGrab = false
}
