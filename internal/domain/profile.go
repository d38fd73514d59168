package domain

import "time"

// User is the credential row. Everything user-facing lives on Profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the user-facing identity record kept alongside the
// credential row.
type Profile struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	AvatarRef string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is an issued sign-in session. Tokens are opaque to callers;
// revoked or expired sessions fail lookup.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
