package service

import (
	"errors"

	"github.com/nmhoang/taskflow/internal/auth"
)

var (
	// ErrPermissionDenied is returned before any backend call when the
	// actor lacks the role an operation requires.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotAuthenticated is returned when an operation requires a
	// signed-in actor.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// gate short-circuits a request so a denied mutation never reaches the
// backing store.
func gate(actor auth.Context, adminOnly bool) error {
	if !actor.Authenticated() {
		return ErrNotAuthenticated
	}
	if adminOnly && !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	return nil
}
