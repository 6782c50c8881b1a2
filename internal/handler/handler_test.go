package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque/internal/backend/local"
	"github.com/pixelplaque/pixelplaque/internal/content"
	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/db"
	"github.com/pixelplaque/pixelplaque/internal/markdown"
	"github.com/pixelplaque/pixelplaque/internal/repository"
	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

var _ local.CodeSender = (*captureSender)(nil)

func (c *captureSender) SendLoginCode(_ context.Context, email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[email] = code
	return nil
}

func (c *captureSender) code(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[email]
}

type harness struct {
	auth      *local.Auth
	sender    *captureSender
	codec     *session.SnapshotCodec
	portfolio *service.PortfolioService
	blog      *service.BlogService
	dashboard *DashboardHandler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	sessions := repository.NewSessionRepository(conn)
	sender := &captureSender{codes: map[string]string{}}
	auth := local.NewAuth(
		repository.NewUserRepository(conn),
		repository.NewCodeRepository(conn),
		sessions,
		sender,
		local.AuthOptions{CodeExpiry: 10 * time.Minute, SessionExpiry: time.Hour, BcryptCost: bcrypt.MinCost, OpenSignup: true},
	)
	table := local.NewTable(repository.NewRecordRepository(conn), sessions)

	portfolio := service.NewPortfolioService(content.NewRepository(table, "portfolio_items", content.PortfolioCodec{}))
	blog := service.NewBlogService(content.NewRepository(table, "blog_posts", content.BlogCodec{}), markdown.NewParser())
	uploads := service.NewUploadService(repository.NewUploadRepository(conn), nil)

	return &harness{
		auth:      auth,
		sender:    sender,
		codec:     session.NewSnapshotCodec("test-secret", time.Hour),
		portfolio: portfolio,
		blog:      blog,
		dashboard: NewDashboardHandler(portfolio, blog, uploads),
	}
}

// signIn runs the code exchange for email and returns storage holding the session
func (h *harness) signIn(t *testing.T, email string) *session.MemoryStorage {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.auth.SendOTP(ctx, email))
	sess, err := h.auth.VerifyOTP(ctx, email, h.sender.code(email))
	require.NoError(t, err)

	storage := session.NewMemoryStorage()
	require.NoError(t, session.Load(storage, h.codec).SetUser(sess.User, sess.Token))
	return storage
}

// request builds an htmx request carrying a session loaded from storage
func (h *harness) request(method, target string, form url.Values, storage session.Storage) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("HX-Request", "true")
	if storage == nil {
		storage = session.NewMemoryStorage()
	}
	ctx := ctxkeys.WithSession(req.Context(), session.NewContext(storage, h.codec))
	return req.WithContext(ctx)
}

func portfolioForm(title string) url.Values {
	return url.Values{
		"title":          {title},
		"description":    {"A storefront rebuild"},
		"category":       {"saas-ecommerce"},
		"image":          {"https://images.example.com/shop.png"},
		"client":         {"Acme"},
		"completionDate": {"2024-03-15"},
		"featured":       {"yes"},
		"technologies":   {"Go, htmx,  Tailwind"},
		"liveUrl":        {""},
	}
}

func TestDashboard_EmptyStates(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")

	rec := httptest.NewRecorder()
	h.dashboard.DashboardPage(rec, h.request(http.MethodGet, "/admin/dashboard", nil, storage))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No Portfolio Items Yet")

	rec = httptest.NewRecorder()
	h.dashboard.DashboardPage(rec, h.request(http.MethodGet, "/admin/dashboard?tab=blog", nil, storage))
	assert.Contains(t, rec.Body.String(), "No Blog Posts Yet")
}

func TestDashboard_CreatePortfolioItem(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")

	rec := httptest.NewRecorder()
	h.dashboard.CreatePortfolioItem(rec, h.request(http.MethodPost, "/admin/portfolio", portfolioForm("Shop Relaunch"), storage))

	body := rec.Body.String()
	assert.Empty(t, rec.Header().Get("HX-Reswap"))
	assert.Contains(t, body, `id="portfolio-list"`)
	assert.Contains(t, body, "Shop Relaunch")
	assert.Contains(t, body, "Portfolio item created")

	items, err := h.portfolio.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Go, htmx, Tailwind", items[0].Technologies)
	assert.True(t, items[0].IsFeatured())
}

func TestDashboard_ValidationFailureKeepsPage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")

	form := portfolioForm("")
	rec := httptest.NewRecorder()
	h.dashboard.CreatePortfolioItem(rec, h.request(http.MethodPost, "/admin/portfolio", form, storage))

	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.NotContains(t, rec.Body.String(), `id="portfolio-list"`)
}

func TestDashboard_UpdateByOtherOwnerLeavesListUnchanged(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	owner := h.signIn(t, "owner@example.com")
	other := h.signIn(t, "other@example.com")

	rec := httptest.NewRecorder()
	h.dashboard.CreatePortfolioItem(rec, h.request(http.MethodPost, "/admin/portfolio", portfolioForm("Original"), owner))
	items, err := h.portfolio.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID

	req := h.request(http.MethodPut, "/admin/portfolio/"+id, portfolioForm("Hijacked"), other)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.dashboard.UpdatePortfolioItem(rec, req)

	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "Error")
	assert.NotContains(t, rec.Body.String(), `id="portfolio-list"`)

	items, err = h.portfolio.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Original", items[0].Title)
}

func TestDashboard_DeletePortfolioItem(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")

	rec := httptest.NewRecorder()
	h.dashboard.CreatePortfolioItem(rec, h.request(http.MethodPost, "/admin/portfolio", portfolioForm("Short Lived"), storage))
	items, err := h.portfolio.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	req := h.request(http.MethodDelete, "/admin/portfolio/"+items[0].ID, nil, storage)
	req.SetPathValue("id", items[0].ID)
	rec = httptest.NewRecorder()
	h.dashboard.DeletePortfolioItem(rec, req)

	assert.Contains(t, rec.Body.String(), "No Portfolio Items Yet")
	assert.Contains(t, rec.Body.String(), "Portfolio item deleted")
}

func blogForm(title, status string) url.Values {
	return url.Values{
		"title":      {title},
		"excerpt":    {"An introduction"},
		"content":    {"Hello **world**"},
		"coverImage": {"https://images.example.com/cover.png"},
		"author":     {"Sam"},
		"category":   {"technology"},
		"tags":       {"intro, news"},
		"status":     {status},
	}
}

func TestDashboard_BlogDraftThenPublish(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")
	public := NewBlogHandler(h.blog)

	rec := httptest.NewRecorder()
	h.dashboard.CreatePost(rec, h.request(http.MethodPost, "/admin/blog", blogForm("My First Post", "draft"), storage))
	assert.Contains(t, rec.Body.String(), "/blog/my-first-post")

	rec = httptest.NewRecorder()
	public.ListPosts(rec, h.request(http.MethodGet, "/blog", nil, nil))
	assert.Contains(t, rec.Body.String(), "No articles found in this category")

	posts, err := h.blog.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].PublishedAt)

	form := blogForm("My First Post (updated)", "published")
	form.Set("slug", "my-first-post")
	req := h.request(http.MethodPut, "/admin/blog/"+posts[0].ID, form, storage)
	req.SetPathValue("id", posts[0].ID)
	rec = httptest.NewRecorder()
	h.dashboard.UpdatePost(rec, req)
	assert.Contains(t, rec.Body.String(), "Blog post updated")

	rec = httptest.NewRecorder()
	public.ListPosts(rec, h.request(http.MethodGet, "/blog", nil, nil))
	assert.Contains(t, rec.Body.String(), "My First Post (updated)")

	req = h.request(http.MethodGet, "/blog/my-first-post", nil, nil)
	req.SetPathValue("slug", "my-first-post")
	rec = httptest.NewRecorder()
	public.ShowPost(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>world</strong>")
}

func TestDashboard_SlugPreview(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := httptest.NewRecorder()
	h.dashboard.SlugPreview(rec, h.request(http.MethodGet, "/admin/blog/slug?title="+url.QueryEscape("Hello, World! 2024"), nil, nil))
	assert.Contains(t, rec.Body.String(), `value="hello-world-2024"`)

	rec = httptest.NewRecorder()
	h.dashboard.SlugPreview(rec, h.request(http.MethodGet, "/admin/blog/slug?slugEdited=true&slug=custom&title=Other", nil, nil))
	assert.Contains(t, rec.Body.String(), `value="custom"`)
}

func TestDashboard_UploadsDisabled(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")

	rec := httptest.NewRecorder()
	h.dashboard.UploadImage(rec, h.request(http.MethodPost, "/admin/uploads?field=image", nil, storage))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandler_LoginFlow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	handler := NewAuthHandler(h.auth)
	storage := session.NewMemoryStorage()

	rec := httptest.NewRecorder()
	handler.SubmitEmail(rec, h.request(http.MethodPost, "/admin/login/email", url.Values{"email": {"admin@example.com"}}, storage))
	assert.Contains(t, rec.Body.String(), "Verify Code")
	assert.Contains(t, rec.Body.String(), "admin@example.com")

	rec = httptest.NewRecorder()
	handler.SubmitCode(rec, h.request(http.MethodPost, "/admin/login/code", url.Values{"code": {"000000x"}}, storage))
	assert.Contains(t, rec.Body.String(), "invalid or expired code")
	assert.Empty(t, rec.Header().Get("HX-Redirect"))

	code := h.sender.code("admin@example.com")
	rec = httptest.NewRecorder()
	handler.SubmitCode(rec, h.request(http.MethodPost, "/admin/login/code", url.Values{"code": {code}}, storage))
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("HX-Redirect"))

	store := session.Load(storage, h.codec)
	assert.True(t, store.CheckAuth())
	assert.Equal(t, "admin@example.com", store.User().Email)

	rec = httptest.NewRecorder()
	handler.Logout(rec, h.request(http.MethodPost, "/admin/logout", url.Values{}, storage))
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
	assert.False(t, session.Load(storage, h.codec).IsAuthenticated())
}

func TestAuthHandler_UseDifferentEmail(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	handler := NewAuthHandler(h.auth)
	storage := session.NewMemoryStorage()

	rec := httptest.NewRecorder()
	handler.SubmitEmail(rec, h.request(http.MethodPost, "/admin/login/email", url.Values{"email": {"admin@example.com"}}, storage))
	_, pending := storage.Get(session.LoginKey)
	require.True(t, pending)

	rec = httptest.NewRecorder()
	handler.ResetEmail(rec, h.request(http.MethodPost, "/admin/login/reset", url.Values{}, storage))
	assert.Contains(t, rec.Body.String(), "Send Code")
	_, pending = storage.Get(session.LoginKey)
	assert.False(t, pending)
}

func TestPortfolioHandler_CategoryFilter(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storage := h.signIn(t, "admin@example.com")

	rec := httptest.NewRecorder()
	h.dashboard.CreatePortfolioItem(rec, h.request(http.MethodPost, "/admin/portfolio", portfolioForm("Shop"), storage))

	public := NewPortfolioHandler(h.portfolio)
	rec = httptest.NewRecorder()
	public.PortfolioPage(rec, h.request(http.MethodGet, "/portfolio", nil, nil))
	assert.Contains(t, rec.Body.String(), "Showing 1 project")

	rec = httptest.NewRecorder()
	public.PortfolioPage(rec, h.request(http.MethodGet, "/portfolio?category=graphic-design", nil, nil))
	assert.Contains(t, rec.Body.String(), "No projects found in this category")
}

func TestHomeHandler_ToggleTheme(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	handler := NewHomeHandler(h.portfolio, service.NewEmailService("", "from@example.com", "hello@example.com", "http://localhost", "PixelPlaque", "10 minutes", true))
	storage := session.NewMemoryStorage()

	rec := httptest.NewRecorder()
	handler.ToggleTheme(rec, h.request(http.MethodPost, "/theme/toggle", url.Values{}, storage))
	assert.Equal(t, "true", rec.Header().Get("HX-Refresh"))
	theme, _ := storage.Get(session.ThemeKey)
	assert.Equal(t, "light", theme)

	rec = httptest.NewRecorder()
	handler.HomePage(rec, h.request(http.MethodGet, "/", nil, storage))
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="light"`)
}

func TestHomeHandler_SendContact(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	handler := NewHomeHandler(h.portfolio, service.NewEmailService("", "from@example.com", "hello@example.com", "http://localhost", "PixelPlaque", "10 minutes", true))

	rec := httptest.NewRecorder()
	handler.SendContact(rec, h.request(http.MethodPost, "/contact", url.Values{
		"name": {"Ann"}, "email": {"ann@example.com"}, "subject": {"Project"}, "message": {"Hi there"},
	}, nil))
	assert.Contains(t, rec.Body.String(), "Message Sent!")

	rec = httptest.NewRecorder()
	handler.SendContact(rec, h.request(http.MethodPost, "/contact", url.Values{"name": {"Ann"}, "email": {"nope"}}, nil))
	assert.Contains(t, rec.Body.String(), "Error")
	assert.Contains(t, rec.Body.String(), `value="Ann"`)
}
