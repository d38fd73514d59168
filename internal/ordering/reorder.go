// Package ordering implements the deterministic list-splice reordering
// used by the drag-and-drop grids and lists.
package ordering

import "fmt"

// Reorder moves the element at src to dst and returns the new order.
// The element is first removed, then inserted at dst interpreted against
// the post-removal sequence, matching splice semantics: moving past an
// immediate neighbor lands exactly on the hovered slot. src == dst
// returns a copy equal to the input. Untouched elements keep their
// relative order. The input slice is never mutated.
func Reorder[T any](list []T, src, dst int) ([]T, error) {
	if src < 0 || src >= len(list) {
		return nil, fmt.Errorf("reorder: source index %d out of range [0,%d)", src, len(list))
	}
	if dst < 0 || dst >= len(list) {
		return nil, fmt.Errorf("reorder: destination index %d out of range [0,%d)", dst, len(list))
	}

	out := make([]T, len(list))
	copy(out, list)
	if src == dst {
		return out, nil
	}

	moved := out[src]
	out = append(out[:src], out[src+1:]...)
	out = append(out, moved) // grow back to full length
	copy(out[dst+1:], out[dst:len(out)-1])
	out[dst] = moved
	return out, nil
}

// Rank pairs an entity id with its display position.
type Rank struct {
	ID    string
	Order int
}

// Reindex emits the full id -> position mapping for a list, for call
// sites that persist display order instead of keeping it client-local.
func Reindex[T any](list []T, idOf func(T) string) []Rank {
	ranks := make([]Rank, len(list))
	for i, item := range list {
		ranks[i] = Rank{ID: idOf(item), Order: i}
	}
	return ranks
}
