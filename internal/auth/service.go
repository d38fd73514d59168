package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

const (
	minPasswordLen = 6
	sessionTTL     = 7 * 24 * time.Hour
)

// Service issues and resolves sessions against the user, profile and
// session repositories. Session tokens are signed JWTs that must also
// match a live session row, so sign-out revokes immediately.
type Service struct {
	users    repository.UserRepo
	profiles repository.ProfileRepo
	sessions repository.SessionRepo
	secret   []byte
}

func NewService(users repository.UserRepo, profiles repository.ProfileRepo, sessions repository.SessionRepo, secret []byte) *Service {
	return &Service{users: users, profiles: profiles, sessions: sessions, secret: secret}
}

// SignUp registers a new account with the default user role.
func (s *Service) SignUp(ctx context.Context, email, password, name string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	if err := s.users.SetRole(ctx, user.ID, domain.RoleUser); err != nil {
		return fmt.Errorf("assigning role: %w", err)
	}

	profile := &domain.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	return nil
}

// SignIn verifies credentials and returns a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expires := now.Add(sessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
		ID:        uuid.New().String(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	session := &domain.Session{Token: token, UserID: user.ID, CreatedAt: now, ExpiresAt: expires}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}
	// Sign-in doubles as session housekeeping.
	if err := s.sessions.DeleteExpired(ctx); err != nil {
		return "", fmt.Errorf("pruning expired sessions: %w", err)
	}
	return token, nil
}

// SignOut revokes the session. Unknown tokens are a no-op.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Session resolves a token into an authenticated Context. Any failure
// (bad signature, revoked, expired) maps to ErrNotAuthenticated so call
// sites can route to the login flow.
func (s *Service) Session(ctx context.Context, token string) (Context, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Context{}, ErrNotAuthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return Context{}, ErrNotAuthenticated
	}
	if err != nil {
		return Context{}, fmt.Errorf("loading session: %w", err)
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return Context{}, ErrNotAuthenticated
	}

	return s.resolve(ctx, session.UserID)
}

// ChangePassword rehashes and stores a new password for the actor.
func (s *Service) ChangePassword(ctx context.Context, actor Context, newPassword string) error {
	if !actor.Authenticated() {
		return ErrNotAuthenticated
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.users.UpdatePassword(ctx, actor.UserID, string(hash))
}

// resolve builds a Context from the profile and role rows.
func (s *Service) resolve(ctx context.Context, userID string) (Context, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return Context{}, fmt.Errorf("loading profile: %w", err)
	}
	role, err := s.users.GetRole(ctx, userID)
	if err != nil {
		return Context{}, fmt.Errorf("loading role: %w", err)
	}
	return Context{
		UserID: userID,
		Name:   profile.Name,
		Email:  profile.Email,
		Role:   role,
	}, nil
}

// Refresh re-resolves the actor after a profile mutation.
func (s *Service) Refresh(ctx context.Context, actor Context) (Context, error) {
	if !actor.Authenticated() {
		return Context{}, ErrNotAuthenticated
	}
	return s.resolve(ctx, actor.UserID)
}
