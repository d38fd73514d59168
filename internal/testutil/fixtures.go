package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/nmhoang/taskflow/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithAssignee(name string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = name
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = tags
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: "description of " + title,
		Priority:    domain.PriorityLater,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Document options
type DocumentOption func(*domain.Document)

func WithDocPriority(p domain.Priority) DocumentOption {
	return func(d *domain.Document) {
		d.Priority = p
	}
}

func WithUploadedAt(at time.Time) DocumentOption {
	return func(d *domain.Document) {
		d.UploadedAt = at
	}
}

func NewTestDocument(fileName, uploadedBy string, opts ...DocumentOption) *domain.Document {
	d := &domain.Document{
		ID:         uuid.New().String(),
		FileName:   fileName,
		FileType:   domain.DetectFileType(fileName),
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
		Priority:   domain.PriorityLater,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Member options
type MemberOption func(*domain.Member)

func WithTeam(team string) MemberOption {
	return func(m *domain.Member) {
		m.Team = team
	}
}

func WithAttachment(fileName, ref string) MemberOption {
	return func(m *domain.Member) {
		m.FileName = fileName
		m.StorageRef = ref
	}
}

func NewTestMember(name, unit string, opts ...MemberOption) *domain.Member {
	m := &domain.Member{
		ID:          uuid.New().String(),
		Name:        name,
		DateOfBirth: time.Date(1995, 3, 15, 0, 0, 0, 0, time.UTC),
		Unit:        unit,
		Team:        "Frontend",
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestUser returns a credential row with a throwaway hash.
func NewTestUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$test-hash-not-a-real-credential",
		CreatedAt:    time.Now().UTC(),
	}
}
