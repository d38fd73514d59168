package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/repository"
	"github.com/nmhoang/taskflow/internal/storage"
)

type memberService struct {
	members repository.MemberRepo
	files   *storage.FileStore
}

func NewMemberService(members repository.MemberRepo, files *storage.FileStore) MemberService {
	return &memberService{members: members, files: files}
}

func (s *memberService) List(ctx context.Context, actor auth.Context) ([]*domain.Member, error) {
	if err := gate(actor, false); err != nil {
		return nil, err
	}
	return s.members.List(ctx)
}

// Create is admin-only.
func (s *memberService) Create(ctx context.Context, actor auth.Context, m *domain.Member) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	if err := validateMember(m); err != nil {
		return err
	}
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	return s.members.Create(ctx, m)
}

// Update is admin-only.
func (s *memberService) Update(ctx context.Context, actor auth.Context, m *domain.Member) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	if err := validateMember(m); err != nil {
		return err
	}
	return s.members.Update(ctx, m)
}

// Attach stores a file against the member record, replacing any
// previous attachment.
func (s *memberService) Attach(ctx context.Context, actor auth.Context, memberID, fileName string, content io.Reader) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}

	ref, err := s.files.Save(fileName, content)
	if err != nil {
		return err
	}
	previous := member.StorageRef
	member.FileName = fileName
	member.StorageRef = ref
	if err := s.members.Update(ctx, member); err != nil {
		_ = s.files.Delete(ref)
		return err
	}
	if previous != "" {
		_ = s.files.Delete(previous)
	}
	return nil
}

func (s *memberService) SaveOrder(ctx context.Context, actor auth.Context, ranks []ordering.Rank) error {
	if err := gate(actor, false); err != nil {
		return err
	}
	return s.members.UpdateOrder(ctx, ranks)
}

func (s *memberService) Delete(ctx context.Context, actor auth.Context, id string) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}
	if member.StorageRef != "" {
		_ = s.files.Delete(member.StorageRef)
	}
	return nil
}

func validateMember(m *domain.Member) error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(m.Unit) == "" {
		return errors.New("unit is required")
	}
	if m.DateOfBirth.IsZero() {
		return errors.New("date of birth is required")
	}
	return nil
}
