package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTable keeps records per collection and enforces the _uid/_id key on writes
type fakeTable struct {
	items     map[string][]backend.Record
	nextID    int
	lastQuery backend.Query
	failRead  error
}

var _ backend.Table = (*fakeTable)(nil)

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string][]backend.Record{}}
}

func (f *fakeTable) GetItems(_ context.Context, collectionID string, q backend.Query) ([]backend.Record, error) {
	f.lastQuery = q
	if f.failRead != nil {
		return nil, f.failRead
	}
	out := []backend.Record{}
	for _, r := range f.items[collectionID] {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (f *fakeTable) AddItem(_ context.Context, collectionID string, item backend.Record) (backend.Record, error) {
	f.nextID++
	rec := item.Clone()
	rec[backend.FieldID] = string(rune('a' + f.nextID - 1))
	f.items[collectionID] = append(f.items[collectionID], rec)
	return rec.Clone(), nil
}

func (f *fakeTable) UpdateItem(_ context.Context, collectionID string, item backend.Record) (backend.Record, error) {
	for i, r := range f.items[collectionID] {
		if r.ID() == item.ID() && r.OwnerID() == item.OwnerID() {
			for k, v := range item {
				r[k] = v
			}
			f.items[collectionID][i] = r
			return r.Clone(), nil
		}
	}
	return nil, backend.ErrNotFound
}

func (f *fakeTable) DeleteItem(_ context.Context, collectionID string, item backend.Record) error {
	for i, r := range f.items[collectionID] {
		if r.ID() == item.ID() && r.OwnerID() == item.OwnerID() {
			f.items[collectionID] = append(f.items[collectionID][:i], f.items[collectionID][i+1:]...)
			return nil
		}
	}
	return backend.ErrNotFound
}

func TestRepository_ListDefaultsAndEmpty(t *testing.T) {
	t.Parallel()
	table := newFakeTable()
	repo := NewRepository(table, "portfolio", PortfolioCodec{})

	items, err := repo.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, backend.Query{Limit: 100, Sort: "_id", Order: backend.OrderDesc}, table.lastQuery)
}

func TestRepository_ListFetchError(t *testing.T) {
	t.Parallel()
	table := newFakeTable()
	table.failRead = errors.New("backend offline")
	repo := NewRepository(table, "portfolio", PortfolioCodec{})

	_, err := repo.List(context.Background(), ListOptions{})
	assert.ErrorIs(t, err, errs.FetchError)
	assert.Equal(t, "backend offline", errs.UserMessage(err, "fallback"))
}

func TestRepository_ListSkipsUndecodable(t *testing.T) {
	t.Parallel()
	table := newFakeTable()
	table.items["blog"] = []backend.Record{
		{backend.FieldID: "1", "title": "ok"},
		{"title": "no id"},
		{backend.FieldID: "3", "title": "bad date", "createdAt": "yesterday"},
	}
	repo := NewRepository(table, "blog", BlogCodec{})

	posts, err := repo.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "ok", posts[0].Title)
}

func TestRepository_CreateUpdateDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	table := newFakeTable()
	repo := NewRepository(table, "portfolio", PortfolioCodec{})

	created, err := repo.Create(ctx, &model.PortfolioItem{Title: "Site", Featured: model.FeaturedYes}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "a", created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)
	assert.True(t, created.IsFeatured())

	created.Title = "Site v2"
	updated, err := repo.Update(ctx, Key{OwnerID: "owner-1", ID: created.ID}, created)
	require.NoError(t, err)
	assert.Equal(t, "Site v2", updated.Title)

	t.Run("owner mismatch is a write error and leaves the list unchanged", func(t *testing.T) {
		before, err := repo.List(ctx, ListOptions{})
		require.NoError(t, err)

		_, err = repo.Update(ctx, Key{OwnerID: "someone-else", ID: created.ID}, &model.PortfolioItem{Title: "hijack"})
		assert.ErrorIs(t, err, errs.WriteError)
		assert.ErrorIs(t, err, backend.ErrNotFound)

		after, err := repo.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	assert.ErrorIs(t, repo.Delete(ctx, Key{OwnerID: "someone-else", ID: created.ID}), errs.WriteError)
	require.NoError(t, repo.Delete(ctx, Key{OwnerID: "owner-1", ID: created.ID}))

	items, err := repo.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBlogCodec(t *testing.T) {
	t.Parallel()
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec := BlogCodec{}.Encode(&model.BlogPost{
		ID:          "p1",
		OwnerID:     "u1",
		Title:       "T",
		Category:    model.BlogDesign,
		Status:      model.StatusPublished,
		PublishedAt: &published,
	})
	assert.Equal(t, "published", rec["published"])
	assert.Equal(t, "2024-05-01T12:00:00Z", rec["publishedAt"])
	assert.Equal(t, "design", rec["category"])
	assert.NotContains(t, rec, "createdAt")

	draft := BlogCodec{}.Encode(&model.BlogPost{Title: "D"})
	assert.Equal(t, "draft", draft["published"])
	assert.Equal(t, "", draft["publishedAt"])
	assert.NotContains(t, draft, backend.FieldID)

	post, err := BlogCodec{}.Decode(backend.Record{
		backend.FieldID:        "p2",
		backend.FieldCreatedAt: "2024-01-02T03:04:05Z",
		"category":             "poetry",
		"published":            "PUBLISHED",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "poetry", post.Category.Label(), "unknown categories keep their raw value")
	assert.Equal(t, 2024, post.CreatedAt.Year())
}

func TestPostDraftDerivesSlug(t *testing.T) {
	t.Parallel()

	d := NewPostDraft()
	d.SetTitle("My First Post")
	assert.Equal(t, "my-first-post", d.Post().Slug)

	d.SetSlug("custom")
	d.SetTitle("Another Title")
	assert.Equal(t, "custom", d.Post().Slug, "an edited slug is not overwritten")
}

func TestPostEditKeepsSlug(t *testing.T) {
	t.Parallel()

	e := EditPost(&model.BlogPost{ID: "p1", OwnerID: "u1", Title: "Old", Slug: "old"})
	e.SetTitle("Completely New Title")
	assert.Equal(t, "old", e.Post().Slug)
	assert.Equal(t, Key{OwnerID: "u1", ID: "p1"}, e.Key())
	assert.Equal(t, "Old", e.Original().Title)

	e.SetSlug("renamed")
	assert.Equal(t, "renamed", e.Post().Slug)
}
