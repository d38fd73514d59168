package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/repository"
	"github.com/nmhoang/taskflow/internal/storage"
	"github.com/nmhoang/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProfileService(t *testing.T) (ProfileService, auth.Context, *storage.FileStore) {
	t.Helper()
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	profiles := repository.NewSQLiteProfileRepo(database)
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	user := testutil.NewTestUser("p@team.vn")
	require.NoError(t, users.Create(ctx, user))
	now := time.Now().UTC()
	require.NoError(t, profiles.Create(ctx, &domain.Profile{
		ID: uuid.New().String(), UserID: user.ID,
		Name: "Nguyễn Văn A", Email: user.Email,
		CreatedAt: now, UpdatedAt: now,
	}))

	actor := auth.Context{UserID: user.ID, Name: "Nguyễn Văn A", Email: user.Email, Role: domain.RoleUser}
	return NewProfileService(profiles, files), actor, files
}

func TestProfileService_Update(t *testing.T) {
	svc, actor, _ := setupProfileService(t)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, actor, "Nguyễn Văn An"))

	profile, err := svc.Get(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", profile.Name)

	assert.Error(t, svc.Update(ctx, actor, "  "), "blank name rejected")
}

func TestProfileService_UploadAvatarReplaces(t *testing.T) {
	svc, actor, files := setupProfileService(t)
	ctx := context.Background()

	first, err := svc.UploadAvatar(ctx, actor, "me.png", strings.NewReader("v1"))
	require.NoError(t, err)

	second, err := svc.UploadAvatar(ctx, actor, "me2.png", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	profile, err := svc.Get(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, second, profile.AvatarRef)

	_, err = files.Open(first)
	assert.ErrorIs(t, err, storage.ErrNotFound, "old avatar removed")
}

func TestProfileService_RequiresAuth(t *testing.T) {
	svc, _, _ := setupProfileService(t)

	_, err := svc.Get(context.Background(), auth.Context{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
