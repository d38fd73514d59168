package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context, actor auth.Context) ([]*domain.Task, error) {
	if err := gate(actor, false); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx)
}

func (s *taskService) GetByID(ctx context.Context, actor auth.Context, id string) (*domain.Task, error) {
	if err := gate(actor, false); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

// Create is admin-only. The id and timestamps are assigned here; an
// empty priority defaults to later.
func (s *taskService) Create(ctx context.Context, actor auth.Context, t *domain.Task) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityLater
	}
	if !domain.ValidPriorities[string(t.Priority)] {
		return fmt.Errorf("unknown priority %q", t.Priority)
	}

	t.ID = uuid.New().String()
	t.CreatedBy = actor.UserID
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

// Update is admin-only and replaces the editable fields.
func (s *taskService) Update(ctx context.Context, actor auth.Context, t *domain.Task) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if !domain.ValidPriorities[string(t.Priority)] {
		return fmt.Errorf("unknown priority %q", t.Priority)
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

// UpdatePriority is open to every signed-in member, matching the quick
// status change on the task card.
func (s *taskService) UpdatePriority(ctx context.Context, actor auth.Context, id string, p domain.Priority) error {
	if err := gate(actor, false); err != nil {
		return err
	}
	if !domain.ValidPriorities[string(p)] {
		return fmt.Errorf("unknown priority %q", p)
	}
	return s.tasks.UpdatePriority(ctx, id, p)
}

func (s *taskService) SaveOrder(ctx context.Context, actor auth.Context, ranks []ordering.Rank) error {
	if err := gate(actor, false); err != nil {
		return err
	}
	return s.tasks.UpdateOrder(ctx, ranks)
}

func (s *taskService) Delete(ctx context.Context, actor auth.Context, id string) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}
