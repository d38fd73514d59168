package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_GestureLifecycle(t *testing.T) {
	c := NewCoordinator(nil)

	assert.False(t, c.Active())
	assert.Equal(t, StateIdle, c.StateOf(0))

	require.True(t, c.Begin(0))
	assert.Equal(t, StatePreviewing, c.StateOf(0))
	assert.True(t, c.CursorGrabbed())

	require.True(t, c.Lift())
	assert.Equal(t, StateDragging, c.StateOf(0))

	require.True(t, c.Enter(2))
	assert.Equal(t, StateOver, c.StateOf(2))
	assert.Equal(t, StateDragging, c.StateOf(0), "states are independent across items")

	src, dst, ok := c.Drop(2)
	require.True(t, ok)
	assert.Equal(t, 0, src)
	assert.Equal(t, 2, dst)

	assert.False(t, c.Active())
	assert.False(t, c.CursorGrabbed(), "cursor resets when the drag ends")
	assert.Equal(t, StateIdle, c.StateOf(0))
	assert.Equal(t, StateIdle, c.StateOf(2))
}

func TestCoordinator_EmitsThroughCallback(t *testing.T) {
	var gotSrc, gotDst int
	calls := 0
	c := NewCoordinator(func(src, dst int) {
		gotSrc, gotDst = src, dst
		calls++
	})

	c.Begin(1)
	c.Lift()
	c.Enter(3)
	c.Drop(3)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, gotSrc)
	assert.Equal(t, 3, gotDst)
}

func TestCoordinator_SelfDropRejected(t *testing.T) {
	calls := 0
	c := NewCoordinator(func(src, dst int) { calls++ })

	c.Begin(1)
	c.Lift()

	assert.False(t, c.Enter(1), "source is not a compatible target")

	_, _, ok := c.Drop(1)
	assert.False(t, ok)
	assert.Zero(t, calls)
	assert.False(t, c.Active(), "gesture still ends")
	assert.False(t, c.CursorGrabbed())
}

func TestCoordinator_EnterLeave(t *testing.T) {
	c := NewCoordinator(nil)
	c.Begin(0)
	c.Lift()

	c.Enter(2)
	assert.Equal(t, StateOver, c.StateOf(2))

	c.Leave(2)
	assert.Equal(t, StateIdle, c.StateOf(2))

	// Hover moves to another target.
	c.Enter(1)
	c.Enter(3)
	assert.Equal(t, StateIdle, c.StateOf(1))
	assert.Equal(t, StateOver, c.StateOf(3))
}

func TestCoordinator_EnterWithoutActiveDrag(t *testing.T) {
	c := NewCoordinator(nil)

	assert.False(t, c.Enter(1))
	assert.Equal(t, StateIdle, c.StateOf(1))
}

func TestCoordinator_CancelResetsEverything(t *testing.T) {
	c := NewCoordinator(nil)
	c.Begin(0)
	c.Lift()
	c.Enter(4)

	c.Cancel()

	assert.False(t, c.Active())
	assert.False(t, c.CursorGrabbed(), "cursor resets on cancellation too")
	assert.Equal(t, StateIdle, c.StateOf(0))
	assert.Equal(t, StateIdle, c.StateOf(4))
}

func TestCoordinator_SingleGestureAtATime(t *testing.T) {
	c := NewCoordinator(nil)

	require.True(t, c.Begin(0))
	assert.False(t, c.Begin(2), "second gesture ignored while one is active")
	assert.Equal(t, 0, c.Source())
}

func TestCoordinator_DropWithoutGesture(t *testing.T) {
	c := NewCoordinator(nil)

	_, _, ok := c.Drop(1)
	assert.False(t, ok)
}

func TestCoordinator_IndependentCoordinators(t *testing.T) {
	grid := NewCoordinator(nil)
	list := NewCoordinator(nil)

	grid.Begin(0)
	assert.True(t, grid.Active())
	assert.False(t, list.Active(), "coordinators share no state")
	assert.True(t, list.Begin(0))
}
