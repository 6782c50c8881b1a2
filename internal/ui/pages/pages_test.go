package pages

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/pixelplaque/pixelplaque/internal/auth"
	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestPortfolio(t *testing.T) {
	t.Parallel()
	ctx := ctxkeys.WithURLPath(context.Background(), "/portfolio")
	ctx = ctxkeys.WithCSRFToken(ctx, "tok")

	items := []*model.PortfolioItem{{
		ID:           "p1",
		Title:        "<b>Glow</b>",
		Category:     model.PortfolioWebDesign,
		Image:        "https://cdn.example.com/glow.png",
		Featured:     model.FeaturedYes,
		Technologies: "Go, htmx",
		LiveURL:      "javascript:alert(1)",
	}}
	out := render(t, ctx, Portfolio(items, "web-design"))

	assert.Contains(t, out, "<title>Portfolio | PixelPlaque</title>")
	assert.Contains(t, out, `<html lang="en" class="dark">`)
	assert.Contains(t, out, `hx-headers="{&#34;X-CSRF-Token&#34;:&#34;tok&#34;}"`)
	assert.Contains(t, out, `aria-current="page">Portfolio</a>`)
	assert.Contains(t, out, "Showing 1 project")
	assert.Contains(t, out, "&lt;b&gt;Glow&lt;/b&gt;")
	assert.Contains(t, out, `src="https://cdn.example.com/glow.png"`)
	assert.Contains(t, out, ">Featured</span>")
	assert.Contains(t, out, ">htmx</span>")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `href="/portfolio?category=web-design"`)

	empty := render(t, ctx, Portfolio(nil, ""))
	assert.Contains(t, empty, "Showing 0 projects")
	assert.Contains(t, empty, "No projects found in this category")
}

func TestBlogPost(t *testing.T) {
	t.Parallel()
	published := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	post := &model.BlogPost{
		Title:       "Hello",
		Slug:        "hello",
		Excerpt:     "Intro",
		Author:      "Ada",
		Category:    model.BlogDesign,
		Tags:        "go, web",
		Status:      model.StatusPublished,
		PublishedAt: &published,
		HTMLContent: "<p>Body <em>text</em></p>",
		ReadTime:    3,
	}
	out := render(t, context.Background(), BlogPost(post))

	assert.Contains(t, out, `<meta name="description" content="Intro">`)
	assert.Contains(t, out, "Ada · Mar 15, 2024 · 3 min read")
	assert.Contains(t, out, "<p>Body <em>text</em></p>")
	assert.Contains(t, out, ">#web</span>")
}

func TestPostMeta(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Not published", postMeta(&model.BlogPost{}))
	assert.Equal(t, "Ada · Not published · 1 min read", postMeta(&model.BlogPost{Author: "Ada", ReadTime: 1}))
}

func TestLoginCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	email := render(t, ctx, LoginCard(auth.StateAwaitingEmail, "a@b.co"))
	assert.Contains(t, email, `hx-post="/admin/login/email"`)
	assert.Contains(t, email, `value="a@b.co"`)
	assert.NotContains(t, email, "Verify Code")

	code := render(t, ctx, LoginCard(auth.StateAwaitingCode, "<a@b.co>"))
	assert.Contains(t, code, "We sent a 6-digit code to <strong>&lt;a@b.co&gt;</strong>.")
	assert.Contains(t, code, `pattern="[0-9]{6}" required autofocus`)
	assert.Contains(t, code, `hx-post="/admin/login/reset"`)
}

func TestBlogForm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	created := render(t, ctx, BlogForm(&model.BlogPost{}, true, false))
	assert.Contains(t, created, `hx-post="/admin/blog"`)
	assert.Contains(t, created, `hx-get="/admin/blog/slug"`)
	assert.Contains(t, created, `name="slugEdited" value=""`)
	assert.Contains(t, created, ">Create</button>")
	assert.NotContains(t, created, `type="file"`)

	edited := render(t, ctx, BlogForm(&model.BlogPost{ID: "p1", Slug: "hello"}, false, true))
	assert.Contains(t, edited, `hx-put="/admin/blog/p1"`)
	assert.NotContains(t, edited, `hx-get="/admin/blog/slug"`)
	assert.Contains(t, edited, `name="slugEdited" value="true"`)
	assert.Contains(t, edited, ">Save Changes</button>")
	assert.Contains(t, edited, `hx-post="/admin/uploads?field=coverImage" hx-target="#coverImage-field"`)
}

func TestBlogList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Contains(t, render(t, ctx, BlogList(nil)), "No Blog Posts Yet")

	out := render(t, ctx, BlogList([]*model.BlogPost{{ID: "p1", Title: "Hello", Slug: "hello"}}))
	assert.Contains(t, out, "/blog/hello")
	assert.Contains(t, out, ">Draft</span>")
	assert.Contains(t, out, `hx-delete="/admin/blog/p1" hx-target="#blog-list" hx-confirm="Delete this blog post?"`)
}
