package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	now := time.Now().UTC()
	user := &model.User{UID: "u-1", Email: "admin@example.com", CreatedAt: now, LastLoginAt: now}
	require.NoError(t, repo.Create(ctx, user))

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{UID: "u-2", Email: "admin@example.com", CreatedAt: now, LastLoginAt: now})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("by email and id", func(t *testing.T) {
		got, err := repo.ByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.UID)

		got, err = repo.ByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", got.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.ByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, repo.UpdateLastLogin(ctx, "missing", now), ErrUserNotFound)
	})

	t.Run("update last login", func(t *testing.T) {
		later := now.Add(time.Hour)
		require.NoError(t, repo.UpdateLastLogin(ctx, "u-1", later))

		got, err := repo.ByID(ctx, "u-1")
		require.NoError(t, err)
		assert.WithinDuration(t, later, got.LastLoginAt, time.Second)
	})
}
