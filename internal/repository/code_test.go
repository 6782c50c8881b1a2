package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeRepository_ConsumeOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewCodeRepository(newTestDB(t))

	code := &model.OneTimeCode{Email: "a@example.com", CodeHash: "hash", ExpiresAt: time.Now().Add(10 * time.Minute)}
	require.NoError(t, repo.Create(ctx, code))
	require.NotEmpty(t, code.ID)

	live, err := repo.LiveByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "hash", live[0].CodeHash)

	consumed, err := repo.Consume(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", consumed.Email)
	assert.True(t, consumed.IsUsed())

	_, err = repo.Consume(ctx, code.ID)
	assert.ErrorIs(t, err, ErrCodeNotFound)

	live, err = repo.LiveByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestCodeRepository_Expired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewCodeRepository(newTestDB(t))

	code := &model.OneTimeCode{Email: "a@example.com", CodeHash: "hash", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, code))

	live, err := repo.LiveByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, live)

	_, err = repo.Consume(ctx, code.ID)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCodeRepository_DeleteUnusedByEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewCodeRepository(newTestDB(t))

	expires := time.Now().Add(time.Minute)
	require.NoError(t, repo.Create(ctx, &model.OneTimeCode{Email: "a@example.com", CodeHash: "1", ExpiresAt: expires}))
	require.NoError(t, repo.Create(ctx, &model.OneTimeCode{Email: "b@example.com", CodeHash: "2", ExpiresAt: expires}))

	require.NoError(t, repo.DeleteUnusedByEmail(ctx, "a@example.com"))

	live, err := repo.LiveByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, live)

	live, err = repo.LiveByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Len(t, live, 1)
}
