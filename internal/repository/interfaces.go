package repository

import (
	"context"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdatePriority(ctx context.Context, id string, p domain.Priority) error
	UpdateOrder(ctx context.Context, ranks []ordering.Rank) error
	Delete(ctx context.Context, id string) error
}

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	UpdatePriority(ctx context.Context, id string, p domain.Priority) error
	UpdateOrder(ctx context.Context, ranks []ordering.Rank) error
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	UpdateOrder(ctx context.Context, ranks []ordering.Rank) error
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetRole(ctx context.Context, userID string) (domain.Role, error)
	SetRole(ctx context.Context, userID string, role domain.Role) error
}

type ProfileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
