package service

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/content"
	"github.com/pixelplaque/pixelplaque/internal/markdown"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTable is an in-memory backend.Table keyed by _id and _uid
type memTable struct {
	items  map[string][]backend.Record
	nextID int
}

var _ backend.Table = (*memTable)(nil)

func newMemTable() *memTable {
	return &memTable{items: map[string][]backend.Record{}}
}

func (m *memTable) GetItems(_ context.Context, collectionID string, _ backend.Query) ([]backend.Record, error) {
	out := []backend.Record{}
	for _, r := range m.items[collectionID] {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (m *memTable) AddItem(_ context.Context, collectionID string, item backend.Record) (backend.Record, error) {
	m.nextID++
	rec := item.Clone()
	rec[backend.FieldID] = fmt.Sprintf("id-%d", m.nextID)
	m.items[collectionID] = append(m.items[collectionID], rec)
	return rec.Clone(), nil
}

func (m *memTable) UpdateItem(_ context.Context, collectionID string, item backend.Record) (backend.Record, error) {
	for i, r := range m.items[collectionID] {
		if r.ID() == item.ID() && r.OwnerID() == item.OwnerID() {
			for k, v := range item {
				r[k] = v
			}
			m.items[collectionID][i] = r
			return r.Clone(), nil
		}
	}
	return nil, backend.ErrNotFound
}

func (m *memTable) DeleteItem(_ context.Context, collectionID string, item backend.Record) error {
	for i, r := range m.items[collectionID] {
		if r.ID() == item.ID() && r.OwnerID() == item.OwnerID() {
			m.items[collectionID] = append(m.items[collectionID][:i], m.items[collectionID][i+1:]...)
			return nil
		}
	}
	return backend.ErrNotFound
}

func newBlogService(t *testing.T) *BlogService {
	t.Helper()
	repo := content.NewRepository(newMemTable(), "blog_posts", content.BlogCodec{})
	svc := NewBlogService(repo, markdown.NewParser())
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func TestBlogService_DraftThenPublish(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newBlogService(t)

	draft := content.NewPostDraft()
	draft.SetTitle("My First Post")
	draft.Post().Content = "Hello **world**"
	created, err := svc.Create(ctx, "user-1", draft)
	require.NoError(t, err)
	assert.Equal(t, "my-first-post", created.Slug)
	assert.Equal(t, model.BlogTechnology, created.Category)
	assert.Equal(t, model.StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)

	published, err := svc.Published(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, published)
	_, err = svc.PublishedBySlug(ctx, "my-first-post")
	assert.ErrorIs(t, err, ErrPostNotFound)

	edit := content.EditPost(created)
	edit.SetTitle("My First Post, Revised")
	edit.Post().Status = model.StatusPublished
	updated, err := svc.Update(ctx, edit)
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, "my-first-post", updated.Slug)

	post, err := svc.PublishedBySlug(ctx, "my-first-post")
	require.NoError(t, err)
	assert.Contains(t, post.HTMLContent, "<strong>world</strong>")
	assert.Equal(t, 1, post.ReadTime)
}

func TestBlogService_PublishedAtKeptOnRepublish(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newBlogService(t)

	draft := content.NewPostDraft()
	draft.SetTitle("Launch")
	draft.Post().Status = model.StatusPublished
	created, err := svc.Create(ctx, "user-1", draft)
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)
	first := *created.PublishedAt

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	edit := content.EditPost(created)
	edit.Post().Excerpt = "updated"
	updated, err := svc.Update(ctx, edit)
	require.NoError(t, err)
	assert.True(t, first.Equal(*updated.PublishedAt))
}

func TestBlogService_PublishedByCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newBlogService(t)

	for _, c := range []model.BlogCategory{model.BlogDesign, model.BlogTutorials} {
		draft := content.NewPostDraft()
		draft.SetTitle(string(c) + " post")
		draft.Post().Category = c
		draft.Post().Status = model.StatusPublished
		_, err := svc.Create(ctx, "user-1", draft)
		require.NoError(t, err)
	}

	all, err := svc.Published(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	design, err := svc.Published(ctx, "design")
	require.NoError(t, err)
	require.Len(t, design, 1)
	assert.Equal(t, "design-post", design[0].Slug)

	business, err := svc.Published(ctx, "business")
	require.NoError(t, err)
	assert.Empty(t, business)
}

func TestCalculateReadTime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, calculateReadTime(""))
	words := make([]byte, 0, 1000*2)
	for range 1000 {
		words = append(words, "w "...)
	}
	assert.Equal(t, 5, calculateReadTime(string(words)))
}

func TestPortfolioService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := content.NewRepository(newMemTable(), "portfolio_items", content.PortfolioCodec{})
	svc := NewPortfolioService(repo)

	add := func(title string, cat model.PortfolioCategory, featured model.Featured) *model.PortfolioItem {
		d := content.NewPortfolioDraft()
		d.Item().Title = title
		d.Item().Category = cat
		d.Item().Featured = featured
		item, err := svc.Create(ctx, "user-1", d)
		require.NoError(t, err)
		return item
	}
	shop := add("Shop", model.PortfolioSaaSEcommerce, model.FeaturedYes)
	add("Brand", model.PortfolioGraphicDesign, model.FeaturedNo)
	add("Docs", model.PortfolioWebDevelopment, model.FeaturedYes)

	all, err := svc.Public(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	graphic, err := svc.Public(ctx, "graphic-design")
	require.NoError(t, err)
	require.Len(t, graphic, 1)
	assert.Equal(t, "Brand", graphic[0].Title)

	featured, err := svc.Featured(ctx, 1)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].IsFeatured())

	edit := content.EditPortfolioItem(shop)
	edit.Item().Client = "Acme"
	updated, err := svc.Update(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Client)

	found, err := svc.ByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.Client)

	require.NoError(t, svc.Delete(ctx, edit.Key()))
	_, err = svc.ByID(ctx, shop.ID)
	assert.ErrorIs(t, err, ErrPortfolioItemNotFound)
}

var legalFS = fstest.MapFS{
	"legal/privacy.md": {Data: []byte("---\ntitle: Privacy Policy\nlastUpdated: \"2025-01-15\"\n---\n\nWe collect nothing.\n")},
	"legal/terms-of-service.md": {Data: []byte("Be nice.\n")},
	"legal/notes.txt": {Data: []byte("ignored")},
}

func TestPageService(t *testing.T) {
	t.Parallel()
	svc := NewPageService(legalFS, "legal", markdown.NewParser())

	page, err := svc.Page("privacy")
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", page.Title)
	assert.Equal(t, "January 15, 2025", page.LastUpdated)
	assert.Contains(t, page.Content, "We collect nothing.")

	terms, err := svc.Page("terms-of-service")
	require.NoError(t, err)
	assert.Equal(t, "Terms Of Service", terms.Title)

	_, err = svc.Page("cookies")
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.ElementsMatch(t, []string{"privacy", "terms-of-service"}, svc.Slugs())
}

func TestSitemapService_PublishedPostsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	blog := newBlogService(t)

	for _, status := range []model.PublishStatus{model.StatusPublished, model.StatusDraft} {
		draft := content.NewPostDraft()
		draft.SetTitle(status.String() + " entry")
		draft.Post().Status = status
		_, err := blog.Create(ctx, "user-1", draft)
		require.NoError(t, err)
	}

	pages := NewPageService(legalFS, "legal", markdown.NewParser())
	svc := NewSitemapService(blog, pages, "https://pixelplaque.test/")

	xml, err := svc.GenerateSitemap(ctx)
	require.NoError(t, err)
	out := string(xml)
	assert.Contains(t, out, "<loc>https://pixelplaque.test/</loc>")
	assert.Contains(t, out, "<loc>https://pixelplaque.test/portfolio</loc>")
	assert.Contains(t, out, "<loc>https://pixelplaque.test/blog/published-entry</loc>")
	assert.NotContains(t, out, "draft-entry")
	assert.Contains(t, out, "<loc>https://pixelplaque.test/legal/privacy</loc>")
}

func TestEmailService_DevModeLogsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dev := NewEmailService("", "noreply@example.com", "hello@example.com", "http://localhost:8090", "PixelPlaque", "10 minutes", true)
	assert.NoError(t, dev.SendLoginCode(ctx, "admin@example.com", "123456"))
	assert.NoError(t, dev.SendContactMessage(ctx, ContactMessage{Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Hello"}))

	unconfigured := NewEmailService("", "noreply@example.com", "hello@example.com", "http://localhost:8090", "PixelPlaque", "10 minutes", false)
	assert.ErrorIs(t, unconfigured.SendLoginCode(ctx, "admin@example.com", "123456"), ErrEmailNotConfigured)
}

func TestEmailTemplates(t *testing.T) {
	t.Parallel()

	subject, body := loginCodeEmailTemplate("654321", "10 minutes", "https://pixelplaque.test", "PixelPlaque")
	assert.Contains(t, subject, "PixelPlaque")
	assert.Contains(t, body, "654321")
	assert.Contains(t, body, "10 minutes")
}
