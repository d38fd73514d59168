package cli

import "github.com/nmhoang/taskflow/internal/auth"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Actor is the signed-in identity. Views consult it for display
	// only; permission checks live in the services.
	Actor auth.Context

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines) and the status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
