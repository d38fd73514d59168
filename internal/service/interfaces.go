package service

import (
	"context"
	"io"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
)

type TaskService interface {
	List(ctx context.Context, actor auth.Context) ([]*domain.Task, error)
	GetByID(ctx context.Context, actor auth.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, actor auth.Context, t *domain.Task) error
	Update(ctx context.Context, actor auth.Context, t *domain.Task) error
	UpdatePriority(ctx context.Context, actor auth.Context, id string, p domain.Priority) error
	SaveOrder(ctx context.Context, actor auth.Context, ranks []ordering.Rank) error
	Delete(ctx context.Context, actor auth.Context, id string) error
}

type DocumentService interface {
	List(ctx context.Context, actor auth.Context) ([]*domain.Document, error)
	Upload(ctx context.Context, actor auth.Context, fileName string, content io.Reader) (*domain.Document, error)
	UpdatePriority(ctx context.Context, actor auth.Context, id string, p domain.Priority) error
	SaveOrder(ctx context.Context, actor auth.Context, ranks []ordering.Rank) error
	Delete(ctx context.Context, actor auth.Context, id string) error
}

type MemberService interface {
	List(ctx context.Context, actor auth.Context) ([]*domain.Member, error)
	Create(ctx context.Context, actor auth.Context, m *domain.Member) error
	Update(ctx context.Context, actor auth.Context, m *domain.Member) error
	Attach(ctx context.Context, actor auth.Context, memberID, fileName string, content io.Reader) error
	SaveOrder(ctx context.Context, actor auth.Context, ranks []ordering.Rank) error
	Delete(ctx context.Context, actor auth.Context, id string) error
}

type ProfileService interface {
	Get(ctx context.Context, actor auth.Context) (*domain.Profile, error)
	Update(ctx context.Context, actor auth.Context, name string) error
	UploadAvatar(ctx context.Context, actor auth.Context, fileName string, content io.Reader) (string, error)
}
