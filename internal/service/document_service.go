package service

import (
	"context"
	"errors"
	"fmt"
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

type documentService struct {
	documents repository.DocumentRepo
	files     *storage.FileStore
}

func NewDocumentService(documents repository.DocumentRepo, files *storage.FileStore) DocumentService {
	return &documentService{documents: documents, files: files}
}

func (s *documentService) List(ctx context.Context, actor auth.Context) ([]*domain.Document, error) {
	if err := gate(actor, false); err != nil {
		return nil, err
	}
	return s.documents.List(ctx)
}

// Upload stores the content, derives the document type from the file
// extension and records the actor as uploader. Any signed-in member may
// upload.
func (s *documentService) Upload(ctx context.Context, actor auth.Context, fileName string, content io.Reader) (*domain.Document, error) {
	if err := gate(actor, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, errors.New("file name is required")
	}

	ref, err := s.files.Save(fileName, content)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	doc := &domain.Document{
		ID:         uuid.New().String(),
		FileName:   fileName,
		FileType:   domain.DetectFileType(fileName),
		StorageRef: ref,
		UploadedBy: actor.Name,
		UploadedAt: time.Now().UTC(),
		Priority:   domain.PriorityLater,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		// The blob is orphaned if this cleanup fails; harmless.
		_ = s.files.Delete(ref)
		return nil, err
	}
	return doc, nil
}

func (s *documentService) UpdatePriority(ctx context.Context, actor auth.Context, id string, p domain.Priority) error {
	if err := gate(actor, false); err != nil {
		return err
	}
	if !domain.ValidPriorities[string(p)] {
		return fmt.Errorf("unknown priority %q", p)
	}
	return s.documents.UpdatePriority(ctx, id, p)
}

func (s *documentService) SaveOrder(ctx context.Context, actor auth.Context, ranks []ordering.Rank) error {
	if err := gate(actor, false); err != nil {
		return err
	}
	return s.documents.UpdateOrder(ctx, ranks)
}

// Delete is admin-only and removes the stored blob with the record.
func (s *documentService) Delete(ctx context.Context, actor auth.Context, id string) error {
	if err := gate(actor, true); err != nil {
		return err
	}
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	return s.files.Delete(doc.StorageRef)
}
