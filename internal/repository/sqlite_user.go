package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nmhoang/taskflow/internal/domain"
)

// SQLiteUserRepo implements UserRepo (credentials + roles) using a
// SQLite database.
type SQLiteUserRepo struct {
	db *sql.DB
}

func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email))
}

func (r *SQLiteUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return requireRow(res)
}

// GetRole returns the stored role, defaulting to user when no row exists.
func (r *SQLiteUserRepo) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM user_roles WHERE user_id = ?`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoleUser, nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up role: %w", err)
	}
	return domain.Role(role), nil
}

func (r *SQLiteUserRepo) SetRole(ctx context.Context, userID string, role domain.Role) error {
	query := `INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`
	if _, err := r.db.ExecContext(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("setting role: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt, timeLayout)
	return &u, nil
}

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db *sql.DB
}

func NewSQLiteProfileRepo(db *sql.DB) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: db}
}

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, user_id, name, email, avatar_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Email, p.AvatarRef,
		p.CreatedAt.Format(timeLayout), p.UpdatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, email, avatar_ref, created_at, updated_at
		FROM profiles WHERE user_id = ?`, userID)

	var p domain.Profile
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.AvatarRef, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.CreatedAt = parseTime(createdAt, timeLayout)
	p.UpdatedAt = parseTime(updatedAt, timeLayout)
	return &p, nil
}

func (r *SQLiteProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET name = ?, email = ?, avatar_ref = ?, updated_at = ?
		WHERE user_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Email, p.AvatarRef, p.UpdatedAt.Format(timeLayout), p.UserID)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return requireRow(res)
}

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db *sql.DB
}

func NewSQLiteSessionRepo(db *sql.DB) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.Token, s.UserID,
		s.CreatedAt.Format(timeLayout), s.ExpiresAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Get(ctx context.Context, token string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ?`, token)

	var s domain.Session
	var createdAt, expiresAt string
	err := row.Scan(&s.Token, &s.UserID, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	s.CreatedAt = parseTime(createdAt, timeLayout)
	s.ExpiresAt = parseTime(expiresAt, timeLayout)
	return &s, nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) DeleteExpired(ctx context.Context) error {
	now := time.Now().UTC().Format(timeLayout)
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now); err != nil {
		return fmt.Errorf("deleting expired sessions: %w", err)
	}
	return nil
}
