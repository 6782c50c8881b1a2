package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	conn := newTestDB(t)
	now := time.Now().UTC()
	require.NoError(t, NewUserRepository(conn).Create(ctx, &model.User{UID: "u-1", Email: "a@example.com", CreatedAt: now, LastLoginAt: now}))

	repo := NewUploadRepository(conn)
	upload := &model.Upload{
		ID:           "up-1",
		UserID:       "u-1",
		Filename:     "up-1.png",
		OriginalName: "cover.png",
		MimeType:     "image/png",
		Size:         1234,
		StoragePath:  "public/images/up-1.png",
		CreatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, upload))

	got, err := repo.ByID(ctx, "up-1")
	require.NoError(t, err)
	assert.Equal(t, "public/images/up-1.png", got.StoragePath)
	assert.Equal(t, int64(1234), got.Size)

	_, err = repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUploadNotFound)
}
