package repository

import (
	"context"
	"testing"
	"time"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDocumentRepo_CreateAndList(t *testing.T) {
	repo := NewSQLiteDocumentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 6, 14, 14, 20, 30, 0, time.UTC)
	plan := testutil.NewTestDocument("Kế hoạch dự án.docx", "Trần Thị B",
		testutil.WithUploadedAt(base))
	report := testutil.NewTestDocument("Báo cáo tháng 1.pdf", "Nguyễn Văn A",
		testutil.WithDocPriority(domain.PriorityUrgent),
		testutil.WithUploadedAt(base.Add(time.Hour)))

	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Create(ctx, report))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Báo cáo tháng 1.pdf", docs[0].FileName, "newest upload first")
	assert.Equal(t, domain.FilePDF, docs[0].FileType)
	assert.Equal(t, domain.FileWord, docs[1].FileType)
}

func TestSQLiteDocumentRepo_UpdatePriority(t *testing.T) {
	repo := NewSQLiteDocumentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	doc := testutil.NewTestDocument("Biên bản họp.pdf", "Lê Văn C")
	require.NoError(t, repo.Create(ctx, doc))
	require.NoError(t, repo.UpdatePriority(ctx, doc.ID, domain.PriorityDone))

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityDone, got.Priority)
}

func TestSQLiteDocumentRepo_UpdateOrder(t *testing.T) {
	repo := NewSQLiteDocumentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestDocument("a.pdf", "x")
	b := testutil.NewTestDocument("b.docx", "y")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateOrder(ctx, []ordering.Rank{
		{ID: a.ID, Order: 0},
		{ID: b.ID, Order: 1},
	}))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, docs[0].ID)
}

func TestSQLiteDocumentRepo_Delete(t *testing.T) {
	repo := NewSQLiteDocumentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	doc := testutil.NewTestDocument("tmp.pdf", "x")
	require.NoError(t, repo.Create(ctx, doc))
	require.NoError(t, repo.Delete(ctx, doc.ID))

	_, err := repo.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
