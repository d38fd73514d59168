package service

import (
	"context"
	"strings"
	"testing"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/repository"
	"github.com/nmhoang/taskflow/internal/storage"
	"github.com/nmhoang/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDocumentService(t *testing.T) (DocumentService, *storage.FileStore) {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := repository.NewSQLiteDocumentRepo(testutil.NewTestDB(t))
	return NewDocumentService(repo, files), files
}

func TestDocumentService_UploadDerivesTypeAndUploader(t *testing.T) {
	svc, files := setupDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, userActor, "Báo cáo tháng 1.PDF", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, domain.FilePDF, doc.FileType, "extension check is case-insensitive")
	assert.Equal(t, "User", doc.UploadedBy, "uploader comes from the auth context")
	assert.Equal(t, domain.PriorityLater, doc.Priority)

	r, err := files.Open(doc.StorageRef)
	require.NoError(t, err)
	r.Close()

	word, err := svc.Upload(ctx, userActor, "Kế hoạch.docx", strings.NewReader("doc"))
	require.NoError(t, err)
	assert.Equal(t, domain.FileWord, word.FileType, "anything but pdf is word")
}

func TestDocumentService_UploadRequiresFileName(t *testing.T) {
	svc, _ := setupDocumentService(t)

	_, err := svc.Upload(context.Background(), userActor, "  ", strings.NewReader(""))
	assert.Error(t, err)
}

func TestDocumentService_UploadRequiresAuth(t *testing.T) {
	svc, _ := setupDocumentService(t)

	_, err := svc.Upload(context.Background(), auth.Context{}, "x.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDocumentService_DeleteRemovesBlob(t *testing.T) {
	svc, files := setupDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, adminActor, "tmp.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, userActor, doc.ID), ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, adminActor, doc.ID))
	_, err = files.Open(doc.StorageRef)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	docs, err := svc.List(ctx, adminActor)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
