// Package auth implements sign-up, sign-in, session lookup and role
// resolution. Auth state is never ambient: callers receive an explicit
// Context at session bootstrap and pass it to anything that needs the
// identity or role. The Context is invalidated at sign-out and
// refreshed after profile mutations.
package auth

import "github.com/nmhoang/taskflow/internal/domain"

// Context is the resolved identity for one authenticated session.
// The zero value is unauthenticated.
type Context struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
}

func (c Context) Authenticated() bool { return c.UserID != "" }

func (c Context) IsAdmin() bool { return c.Role == domain.RoleAdmin }
