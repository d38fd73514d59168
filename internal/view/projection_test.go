package view

import (
	"testing"
	"time"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func makeTask(id, title string, priority domain.Priority, created time.Time, tags ...string) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       title,
		Description: "desc of " + title,
		Priority:    priority,
		Tags:        tags,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func TestProject_EmptyQueryKeepsOrder(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*domain.Task{
		makeTask("1", "Deploy", domain.PriorityLater, base),
		makeTask("2", "Review", domain.PriorityUrgent, base.Add(time.Hour)),
		makeTask("3", "Archive", domain.PriorityDone, base.Add(2*time.Hour)),
	}

	out := Project(tasks, Params{Priority: domain.PriorityAll})

	assert.Equal(t, []string{"1", "2", "3"}, taskIDs(out), "no sort, empty query: input order preserved")
}

func TestProject_QueryMatchesTitleDescriptionAndTags(t *testing.T) {
	base := time.Now().UTC()
	tasks := []*domain.Task{
		makeTask("1", "Viết báo cáo", domain.PriorityUrgent, base),
		makeTask("2", "Họp nhóm", domain.PriorityLater, base, "report", "weekly"),
		makeTask("3", "Deploy", domain.PriorityLater, base),
	}

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match, case-insensitive", "BÁO", []string{"1"}},
		{"tag match", "report", []string{"2"}},
		{"description match", "desc of deploy", []string{"3"}},
		{"no match", "zzz", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Project(tasks, Params{Query: tc.query, Priority: domain.PriorityAll})
			assert.Equal(t, tc.want, taskIDs(out))
		})
	}
}

func TestProject_PriorityFilter(t *testing.T) {
	base := time.Now().UTC()
	tasks := []*domain.Task{
		makeTask("1", "a", domain.PriorityUrgent, base),
		makeTask("2", "b", domain.PriorityDone, base),
		makeTask("3", "c", domain.PriorityUrgent, base),
	}

	out := Project(tasks, Params{Priority: string(domain.PriorityUrgent)})
	assert.Equal(t, []string{"1", "3"}, taskIDs(out))

	out = Project(tasks, Params{Priority: domain.PriorityAll})
	assert.Len(t, out, 3)
}

func TestProject_FiltersCommute(t *testing.T) {
	base := time.Now().UTC()
	tasks := []*domain.Task{
		makeTask("1", "report alpha", domain.PriorityUrgent, base),
		makeTask("2", "report beta", domain.PriorityDone, base),
		makeTask("3", "memo", domain.PriorityUrgent, base),
	}

	// Applying the search filter to a priority-filtered list equals
	// applying both at once.
	prioritized := Project(tasks, Params{Priority: string(domain.PriorityUrgent)})
	sequential := Project(prioritized, Params{Query: "report", Priority: domain.PriorityAll})
	combined := Project(tasks, Params{Query: "report", Priority: string(domain.PriorityUrgent)})

	assert.Equal(t, taskIDs(combined), taskIDs(sequential))
	assert.Equal(t, []string{"1"}, taskIDs(combined))
}

func TestProject_PrioritySortIsStable(t *testing.T) {
	base := time.Now().UTC()
	tasks := []*domain.Task{
		makeTask("1", "a", domain.PriorityDone, base),
		makeTask("2", "b", domain.PriorityUrgent, base),
		makeTask("3", "c", domain.PriorityLater, base),
		makeTask("4", "d", domain.PriorityUrgent, base),
		makeTask("5", "e", domain.PriorityLater, base),
	}

	out := Project(tasks, Params{Priority: domain.PriorityAll, Sort: domain.SortPriority})

	// urgent before later before done; within a group the pre-sort
	// order is preserved.
	assert.Equal(t, []string{"2", "4", "3", "5", "1"}, taskIDs(out))
}

func TestProject_CreatedAtSort(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	tasks := []*domain.Task{
		makeTask("1", "older", domain.PriorityUrgent, t1),
		makeTask("2", "newer", domain.PriorityDone, t2),
	}

	out := Project(tasks, Params{Priority: domain.PriorityAll, Sort: domain.SortPriority})
	assert.Equal(t, []string{"1", "2"}, taskIDs(out))

	out = Project(tasks, Params{Priority: domain.PriorityAll, Sort: domain.SortDesc})
	assert.Equal(t, []string{"2", "1"}, taskIDs(out))

	out = Project(tasks, Params{Priority: domain.PriorityAll, Sort: domain.SortAsc})
	assert.Equal(t, []string{"1", "2"}, taskIDs(out))
}

func TestProject_TimestampsComparedAsInstants(t *testing.T) {
	// Same instant expressed in different zones must compare equal, so
	// the stable sort keeps input order rather than flipping on the
	// string representation.
	hanoi := time.FixedZone("ICT", 7*3600)
	t1 := time.Date(2024, 6, 1, 15, 0, 0, 0, hanoi)
	t2 := t1.UTC()

	tasks := []*domain.Task{
		makeTask("1", "a", domain.PriorityUrgent, t1),
		makeTask("2", "b", domain.PriorityUrgent, t2),
	}

	out := Project(tasks, Params{Priority: domain.PriorityAll, Sort: domain.SortAsc})
	assert.Equal(t, []string{"1", "2"}, taskIDs(out))
}

func TestProject_IdempotentUnderReapplication(t *testing.T) {
	base := time.Now().UTC()
	tasks := []*domain.Task{
		makeTask("1", "report alpha", domain.PriorityDone, base),
		makeTask("2", "report beta", domain.PriorityUrgent, base.Add(time.Minute)),
		makeTask("3", "memo", domain.PriorityLater, base.Add(2*time.Minute)),
	}
	params := Params{Query: "report", Priority: domain.PriorityAll, Sort: domain.SortPriority}

	once := Project(tasks, params)
	twice := Project(once, params)

	assert.Equal(t, taskIDs(once), taskIDs(twice))
}

func TestProject_MembersIgnorePriorityFilter(t *testing.T) {
	members := []*domain.Member{
		{ID: "1", Name: "Nguyễn Văn A", Unit: "Phòng Kỹ thuật", CreatedAt: time.Now().UTC()},
		{ID: "2", Name: "Trần Thị B", Unit: "Phòng Marketing", CreatedAt: time.Now().UTC()},
	}

	out := Project(members, Params{Priority: string(domain.PriorityUrgent)})
	assert.Len(t, out, 2, "members carry no priority and pass every filter")

	out = Project(members, Params{Query: "marketing", Priority: domain.PriorityAll})
	assert.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	base := time.Now().UTC()
	tasks := []*domain.Task{
		makeTask("1", "a", domain.PriorityDone, base),
		makeTask("2", "b", domain.PriorityUrgent, base),
	}

	Project(tasks, Params{Priority: domain.PriorityAll, Sort: domain.SortPriority})

	assert.Equal(t, []string{"1", "2"}, taskIDs(tasks))
}
