package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecords(t *testing.T, repo RecordRepository, collection string, ids ...string) {
	t.Helper()
	base := time.Now().UTC()
	for i, id := range ids {
		at := base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(context.Background(), &model.StoredRecord{
			ID:           id,
			CollectionID: collection,
			OwnerID:      "owner",
			Data:         `{"title":"` + id + `"}`,
			CreatedAt:    at,
			UpdatedAt:    at,
		}))
	}
}

func TestRecordRepository_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))

	seedRecords(t, repo, "posts", "a", "b", "c")
	seedRecords(t, repo, "other", "z")

	t.Run("empty collection is an empty slice", func(t *testing.T) {
		got, err := repo.List(ctx, "missing", RecordListOptions{SortColumn: SortByID})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("descending by id with limit", func(t *testing.T) {
		got, err := repo.List(ctx, "posts", RecordListOptions{SortColumn: SortByID, Descending: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "c", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("ascending by created_at", func(t *testing.T) {
		got, err := repo.List(ctx, "posts", RecordListOptions{SortColumn: SortByCreatedAt})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := repo.List(ctx, "posts", RecordListOptions{SortColumn: "data; DROP TABLE records"})
		assert.ErrorIs(t, err, ErrInvalidSort)
	})
}

func TestRecordRepository_KeyedWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))
	seedRecords(t, repo, "posts", "a")

	rec, err := repo.ByKey(ctx, "posts", "owner", "a")
	require.NoError(t, err)

	rec.Data = `{"title":"changed"}`
	rec.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.ByKey(ctx, "posts", "owner", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"changed"}`, got.Data)

	wrongOwner := *rec
	wrongOwner.OwnerID = "intruder"
	assert.ErrorIs(t, repo.Update(ctx, &wrongOwner), ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "posts", "intruder", "a"), ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, "posts", "owner", "a"))
	_, err = repo.ByKey(ctx, "posts", "owner", "a")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
