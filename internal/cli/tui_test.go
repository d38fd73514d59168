package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/teatest"
)

var (
	tuiAdmin = auth.Context{UserID: "admin-1", Name: "Nguyễn Văn A", Email: "a@donvi.vn", Role: domain.RoleAdmin}
	tuiUser  = auth.Context{UserID: "user-1", Name: "Trần Thị B", Email: "b@donvi.vn", Role: domain.RoleUser}
)

func newDriver(t *testing.T, app *App, actor auth.Context) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app, actor), 100, 40)
	d.DrainInit()
	return d
}

func appModelOf(d *teatest.Driver) appModel {
	return d.Model.(appModel)
}

func activeViewID(d *teatest.Driver) ViewID {
	m := appModelOf(d)
	return m.activeView().ID()
}

// seedAndOrder creates tasks as the admin and pins display order to
// the given title sequence so list positions are deterministic.
func seedAndOrder(t *testing.T, app *App, titles ...string) []*domain.Task {
	t.Helper()
	ctx := context.Background()

	created := make([]*domain.Task, len(titles))
	values := make([]domain.Task, len(titles))
	for i, title := range titles {
		task := &domain.Task{Title: title}
		require.NoError(t, app.Tasks.Create(ctx, tuiAdmin, task))
		created[i] = task
		values[i] = *task
	}

	ranks := ordering.Reindex(values, func(task domain.Task) string { return task.ID })
	require.NoError(t, app.Tasks.SaveOrder(ctx, tuiAdmin, ranks))
	return created
}

func TestTUIDashboardLoadsOnStartup(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Báo cáo tuần", "Họp giao ban")

	d := newDriver(t, env.app, tuiUser)

	assert.Equal(t, ViewDashboard, activeViewID(d))
	out := d.View()
	assert.Contains(t, out, "Báo cáo tuần")
	assert.Contains(t, out, "Họp giao ban")
	assert.Contains(t, out, "SAU")
	assert.NotContains(t, out, "Loading")
}

func TestTUIQuitKeys(t *testing.T) {
	env := newTestEnv(t)

	d := newDriver(t, env.app, tuiUser)
	d.PressKey('q')
	assert.True(t, appModelOf(d).quitting)

	d = newDriver(t, env.app, tuiUser)
	d.PressCtrlC()
	assert.True(t, appModelOf(d).quitting)
}

func TestTUISwitchViews(t *testing.T) {
	env := newTestEnv(t)
	d := newDriver(t, env.app, tuiUser)

	d.PressKey('2')
	assert.Equal(t, ViewDocuments, activeViewID(d))

	d.PressKey('3')
	assert.Equal(t, ViewMembers, activeViewID(d))

	d.PressKey('1')
	assert.Equal(t, ViewDashboard, activeViewID(d))
}

func TestTUIHeaderShowsActor(t *testing.T) {
	env := newTestEnv(t)
	d := newDriver(t, env.app, tuiAdmin)

	out := d.View()
	assert.Contains(t, out, "Nguyễn Văn A")
	assert.Contains(t, out, "[admin]")
}

func TestTUISearchFiltersRows(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Báo cáo tuần", "Họp giao ban")

	d := newDriver(t, env.app, tuiUser)

	d.PressKey('/')
	d.Type("giao ban")
	d.PressEnter()

	out := d.View()
	assert.Contains(t, out, "Họp giao ban")
	assert.NotContains(t, out, "Báo cáo tuần")
}

func TestTUIFilterCycleHidesOtherPriorities(t *testing.T) {
	env := newTestEnv(t)
	tasks := seedAndOrder(t, env.app, "Khẩn cấp", "Bình thường")
	require.NoError(t, env.app.Tasks.UpdatePriority(context.Background(), tuiUser, tasks[0].ID, domain.PriorityUrgent))

	d := newDriver(t, env.app, tuiUser)

	// all -> urgent
	d.PressKey('f')
	out := d.View()
	assert.Contains(t, out, "Khẩn cấp")
	assert.NotContains(t, out, "Bình thường")

	// urgent -> later
	d.PressKey('f')
	out = d.View()
	assert.NotContains(t, out, "Khẩn cấp")
	assert.Contains(t, out, "Bình thường")
}

func TestTUIGrabAndDropReorders(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Một", "Hai", "Ba")

	d := newDriver(t, env.app, tuiUser)

	// Grab the first row, walk it two slots down, and drop.
	d.PressSpace()
	d.PressDown()
	d.PressDown()
	d.PressSpace()

	tasks, err := env.app.Tasks.List(context.Background(), tuiUser)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Hai", tasks[0].Title)
	assert.Equal(t, "Ba", tasks[1].Title)
	assert.Equal(t, "Một", tasks[2].Title)
}

func TestTUIDragCancelLeavesOrder(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Một", "Hai")

	d := newDriver(t, env.app, tuiUser)

	d.PressSpace()
	d.PressDown()
	d.PressEsc()

	tasks, err := env.app.Tasks.List(context.Background(), tuiUser)
	require.NoError(t, err)
	assert.Equal(t, "Một", tasks[0].Title)
	assert.Equal(t, "Hai", tasks[1].Title)
}

func TestTUISelfDropDoesNothing(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Một", "Hai")

	d := newDriver(t, env.app, tuiUser)

	d.PressSpace()
	d.PressSpace()

	tasks, err := env.app.Tasks.List(context.Background(), tuiUser)
	require.NoError(t, err)
	assert.Equal(t, "Một", tasks[0].Title)
	assert.Equal(t, "Hai", tasks[1].Title)
}

func TestTUIPriorityCyclePersists(t *testing.T) {
	env := newTestEnv(t)
	tasks := seedAndOrder(t, env.app, "Việc chung")

	d := newDriver(t, env.app, tuiUser)

	// later -> done
	d.PressKey('p')

	got, err := env.app.Tasks.GetByID(context.Background(), tuiUser, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityDone, got.Priority)
	assert.Contains(t, d.View(), "XONG")
}

func TestTUIDeleteDeniedShowsError(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Việc chung")

	d := newDriver(t, env.app, tuiUser)
	d.PressKey('x')

	// The row survives and the status line carries the refusal.
	tasks, err := env.app.Tasks.List(context.Background(), tuiUser)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Contains(t, d.View(), "permission")
}


func TestTUIDeleteAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	seedAndOrder(t, env.app, "Việc cũ")

	d := newDriver(t, env.app, tuiAdmin)
	d.PressKey('x')

	tasks, err := env.app.Tasks.List(context.Background(), tuiAdmin)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
