package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/testutil"
)

func TestCountTasks(t *testing.T) {
	tasks := []domain.Task{
		*testutil.NewTestTask("a", testutil.WithPriority(domain.PriorityUrgent)),
		*testutil.NewTestTask("b", testutil.WithPriority(domain.PriorityLater)),
		*testutil.NewTestTask("c", testutil.WithPriority(domain.PriorityDone)),
		*testutil.NewTestTask("d", testutil.WithPriority(domain.PriorityDone)),
	}

	s := CountTasks(tasks)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Urgent)
	assert.Equal(t, 1, s.Later)
	assert.Equal(t, 2, s.Done)
	assert.Equal(t, 50, s.Percent())
}

func TestPercentEmpty(t *testing.T) {
	assert.Equal(t, 0, TaskStats{}.Percent())
}

func TestRenderProgress(t *testing.T) {
	out := RenderProgress(TaskStats{Total: 10, Done: 5})
	assert.Contains(t, out, "5/10")
	assert.Contains(t, out, "(50%)")
}

func TestPriorityBadgeLabels(t *testing.T) {
	assert.Contains(t, PriorityBadge(domain.PriorityUrgent), "KHẨN")
	assert.Contains(t, PriorityBadge(domain.PriorityLater), "SAU")
	assert.Contains(t, PriorityBadge(domain.PriorityDone), "XONG")
}

func TestFileTypeLabel(t *testing.T) {
	assert.Contains(t, FileTypeLabel(domain.FilePDF), "PDF")
	assert.Contains(t, FileTypeLabel(domain.FileWord), "DOC")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ngắn", Truncate("ngắn", 10))
	assert.Equal(t, "báo cáo t…", Truncate("báo cáo tuần này", 10))
	assert.Equal(t, "", Truncate("x", 0))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2025", FormatDate(d))
	assert.Equal(t, "-", FormatDatePtr(nil))
}
