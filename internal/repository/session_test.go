package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	repo := NewSessionRepository(conn)

	now := time.Now().UTC()
	require.NoError(t, users.Create(ctx, &model.User{UID: "u-1", Email: "a@example.com", CreatedAt: now, LastLoginAt: now}))

	require.NoError(t, repo.Create(ctx, &model.Session{UserID: "u-1", TokenHash: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.Session{UserID: "u-1", TokenHash: "stale", ExpiresAt: now.Add(-time.Hour)}))

	got, err := repo.LiveByTokenHash(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)

	_, err = repo.LiveByTokenHash(ctx, "stale")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, repo.DeleteByTokenHash(ctx, "live"))
	_, err = repo.LiveByTokenHash(ctx, "live")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, repo.DeleteByTokenHash(ctx, "live"), ErrSessionNotFound)
}
