package service

import (
	"context"
	"testing"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/repository"
	"github.com/nmhoang/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor = auth.Context{UserID: "u-admin", Name: "Admin", Role: domain.RoleAdmin}
	userActor  = auth.Context{UserID: "u-user", Name: "User", Role: domain.RoleUser}
)

func setupTaskService(t *testing.T) TaskService {
	t.Helper()
	return NewTaskService(repository.NewSQLiteTaskRepo(testutil.NewTestDB(t)))
}

func TestTaskService_CreateAssignsIdentity(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Title: "Viết tài liệu"}
	require.NoError(t, svc.Create(ctx, adminActor, task))

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.PriorityLater, task.Priority, "blank priority defaults to later")
	assert.Equal(t, "u-admin", task.CreatedBy)
	assert.False(t, task.UpdatedAt.Before(task.CreatedAt))
}

func TestTaskService_CreateValidation(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, adminActor, &domain.Task{Title: "   "}))
	assert.Error(t, svc.Create(ctx, adminActor, &domain.Task{Title: "x", Priority: "bogus"}))
}

func TestTaskService_NonAdminCreateShortCircuits(t *testing.T) {
	spy := &spyTaskRepo{}
	svc := NewTaskService(spy)

	err := svc.Create(context.Background(), userActor, &domain.Task{Title: "x"})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Zero(t, spy.calls, "denied mutation must never reach the backing store")
}

func TestTaskService_AnonymousRejected(t *testing.T) {
	spy := &spyTaskRepo{}
	svc := NewTaskService(spy)

	_, err := svc.List(context.Background(), auth.Context{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, spy.calls)
}

func TestTaskService_UpdatePriorityOpenToMembers(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Title: "x", Priority: domain.PriorityUrgent}
	require.NoError(t, svc.Create(ctx, adminActor, task))

	require.NoError(t, svc.UpdatePriority(ctx, userActor, task.ID, domain.PriorityDone))

	got, err := svc.GetByID(ctx, userActor, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityDone, got.Priority)
}

func TestTaskService_DeleteAdminOnly(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Title: "x"}
	require.NoError(t, svc.Create(ctx, adminActor, task))

	assert.ErrorIs(t, svc.Delete(ctx, userActor, task.ID), ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, adminActor, task.ID))

	tasks, err := svc.List(ctx, adminActor)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_SaveOrderPersists(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	a := &domain.Task{Title: "a"}
	b := &domain.Task{Title: "b"}
	require.NoError(t, svc.Create(ctx, adminActor, a))
	require.NoError(t, svc.Create(ctx, adminActor, b))

	require.NoError(t, svc.SaveOrder(ctx, userActor, []ordering.Rank{
		{ID: a.ID, Order: 0},
		{ID: b.ID, Order: 1},
	}))

	tasks, err := svc.List(ctx, userActor)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Title)
}

// spyTaskRepo counts calls so tests can assert a request never fired.
type spyTaskRepo struct {
	calls int
}

func (s *spyTaskRepo) Create(ctx context.Context, t *domain.Task) error { s.calls++; return nil }
func (s *spyTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	s.calls++
	return nil, repository.ErrNotFound
}
func (s *spyTaskRepo) List(ctx context.Context) ([]*domain.Task, error) { s.calls++; return nil, nil }
func (s *spyTaskRepo) Update(ctx context.Context, t *domain.Task) error { s.calls++; return nil }
func (s *spyTaskRepo) UpdatePriority(ctx context.Context, id string, p domain.Priority) error {
	s.calls++
	return nil
}
func (s *spyTaskRepo) UpdateOrder(ctx context.Context, ranks []ordering.Rank) error {
	s.calls++
	return nil
}
func (s *spyTaskRepo) Delete(ctx context.Context, id string) error { s.calls++; return nil }
