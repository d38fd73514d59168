package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteUserRepo_CreateAndLookup(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	user := testutil.NewTestUser("a@team.vn")
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "a@team.vn")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@team.vn", byID.Email)
}

func TestSQLiteUserRepo_DuplicateEmailRejected(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestUser("dup@team.vn")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestUser("dup@team.vn")))
}

func TestSQLiteUserRepo_Roles(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	user := testutil.NewTestUser("r@team.vn")
	require.NoError(t, repo.Create(ctx, user))

	role, err := repo.GetRole(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role, "missing role row defaults to user")

	require.NoError(t, repo.SetRole(ctx, user.ID, domain.RoleAdmin))
	role, err = repo.GetRole(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	// Upsert overwrites.
	require.NoError(t, repo.SetRole(ctx, user.ID, domain.RoleUser))
	role, err = repo.GetRole(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
}

func TestSQLiteProfileRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(database)
	profiles := NewSQLiteProfileRepo(database)
	ctx := context.Background()

	user := testutil.NewTestUser("p@team.vn")
	require.NoError(t, users.Create(ctx, user))

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      "Nguyễn Văn A",
		Email:     user.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, profiles.Create(ctx, profile))

	profile.Name = "Nguyễn Văn An"
	profile.AvatarRef = "avatar-ref"
	profile.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, profiles.Update(ctx, profile))

	got, err := profiles.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", got.Name)
	assert.Equal(t, "avatar-ref", got.AvatarRef)
}

func TestSQLiteSessionRepo_Lifecycle(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(database)
	sessions := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	user := testutil.NewTestUser("s@team.vn")
	require.NoError(t, users.Create(ctx, user))

	now := time.Now().UTC()
	live := &domain.Session{Token: "tok-live", UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &domain.Session{Token: "tok-stale", UserID: user.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, sessions.Create(ctx, live))
	require.NoError(t, sessions.Create(ctx, stale))

	got, err := sessions.Get(ctx, "tok-live")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	require.NoError(t, sessions.DeleteExpired(ctx))
	_, err = sessions.Get(ctx, "tok-stale")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, sessions.Delete(ctx, "tok-live"))
	_, err = sessions.Get(ctx, "tok-live")
	assert.ErrorIs(t, err, ErrNotFound)
}
