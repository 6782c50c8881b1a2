package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pixelplaque/pixelplaque/internal/content"
	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/ui"
	"github.com/pixelplaque/pixelplaque/internal/ui/components/toast"
	"github.com/pixelplaque/pixelplaque/internal/ui/pages"
	"github.com/pixelplaque/pixelplaque/internal/validation"
)

// maxUploadMemory bounds the multipart form held in memory; larger parts spill to disk
const maxUploadMemory = 8 << 20

// DashboardHandler serves the admin content manager. Every route is behind RequireAdmin.
type DashboardHandler struct {
	portfolioService *service.PortfolioService
	blogService      *service.BlogService
	uploadService    *service.UploadService
}

func NewDashboardHandler(portfolioService *service.PortfolioService, blogService *service.BlogService, uploadService *service.UploadService) *DashboardHandler {
	return &DashboardHandler{
		portfolioService: portfolioService,
		blogService:      blogService,
		uploadService:    uploadService,
	}
}

// writeCtx carries the session token the backend checks on writes
func writeCtx(r *http.Request) context.Context {
	return ctxkeys.Session(r.Context()).Session.WithToken(r.Context())
}

// writeFailed reports a failed write as a toast and leaves the page as it was
func writeFailed(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	w.Header().Set("HX-Reswap", "none")
	ui.RenderOOB(w, r, toast.Error(failureMessage(err, fallback)), toast.Target)
}

// failureMessage shows validation and collaborator messages, and fallback for anything else
func failureMessage(err error, fallback string) string {
	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message
	}
	return errs.UserMessage(err, fallback)
}

// writeSucceeded closes the dialog, toasts and re-renders the list
func writeSucceeded(w http.ResponseWriter, r *http.Request, message string, list templ.Component) {
	ui.RenderOOB(w, r, templ.NopComponent, "innerHTML:#dialog")
	ui.RenderOOB(w, r, toast.Success(message), toast.Target)
	ui.Render(w, r, list)
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	tab := r.URL.Query().Get("tab")
	if tab != pages.TabBlog {
		tab = pages.TabPortfolio
	}

	var panel templ.Component
	if tab == pages.TabBlog {
		posts, err := h.blogService.Posts(r.Context())
		if err != nil {
			slog.Warn("failed to load blog posts", "error", err)
			ui.RenderOOB(w, r, toast.Error(errs.UserMessage(err, "Failed to load blog posts")), toast.Target)
			posts = []*model.BlogPost{}
		}
		panel = pages.BlogPanel(posts)
	} else {
		items, err := h.portfolioService.Items(r.Context())
		if err != nil {
			slog.Warn("failed to load portfolio items", "error", err)
			ui.RenderOOB(w, r, toast.Error(errs.UserMessage(err, "Failed to load portfolio items")), toast.Target)
			items = []*model.PortfolioItem{}
		}
		panel = pages.PortfolioPanel(items)
	}

	ui.Render(w, r, pages.Dashboard(user, tab, panel))
}

// ============================================================================
// Portfolio
// ============================================================================

func (h *DashboardHandler) NewPortfolioDialog(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.PortfolioForm(content.NewPortfolioDraft().Item(), true, h.uploadService.Enabled()))
}

func (h *DashboardHandler) EditPortfolioDialog(w http.ResponseWriter, r *http.Request) {
	item, err := h.portfolioService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailed(w, r, err, "Portfolio item not found")
		return
	}
	ui.Render(w, r, pages.PortfolioForm(item, false, h.uploadService.Enabled()))
}

func (h *DashboardHandler) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	draft := content.NewPortfolioDraft()
	err := applyPortfolioForm(r, draft.Item())
	if err != nil {
		writeFailed(w, r, err, "Invalid portfolio item")
		return
	}

	_, err = h.portfolioService.Create(writeCtx(r), user.UID, draft)
	if err != nil {
		slog.Warn("failed to create portfolio item", "error", err, "user_id", user.UID)
		writeFailed(w, r, err, "Failed to save portfolio item")
		return
	}

	h.portfolioWritten(w, r, "Portfolio item created")
}

func (h *DashboardHandler) UpdatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	existing, err := h.portfolioService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailed(w, r, err, "Portfolio item not found")
		return
	}

	edit := content.EditPortfolioItem(existing)
	err = applyPortfolioForm(r, edit.Item())
	if err != nil {
		writeFailed(w, r, err, "Invalid portfolio item")
		return
	}

	_, err = h.portfolioService.Update(writeCtx(r), edit)
	if err != nil {
		slog.Warn("failed to update portfolio item", "error", err, "user_id", user.UID, "item_id", existing.ID)
		writeFailed(w, r, err, "Failed to save portfolio item")
		return
	}

	h.portfolioWritten(w, r, "Portfolio item updated")
}

func (h *DashboardHandler) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	existing, err := h.portfolioService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailed(w, r, err, "Portfolio item not found")
		return
	}

	err = h.portfolioService.Delete(writeCtx(r), content.Key{OwnerID: existing.OwnerID, ID: existing.ID})
	if err != nil {
		slog.Warn("failed to delete portfolio item", "error", err, "user_id", user.UID, "item_id", existing.ID)
		writeFailed(w, r, err, "Failed to delete portfolio item")
		return
	}

	h.portfolioWritten(w, r, "Portfolio item deleted")
}

func (h *DashboardHandler) portfolioWritten(w http.ResponseWriter, r *http.Request, message string) {
	items, err := h.portfolioService.Items(r.Context())
	if err != nil {
		slog.Warn("failed to reload portfolio items", "error", err)
		w.Header().Set("HX-Reswap", "none")
		ui.RenderOOB(w, r, templ.NopComponent, "innerHTML:#dialog")
		ui.RenderOOB(w, r, toast.Success(message), toast.Target)
		return
	}
	writeSucceeded(w, r, message, pages.PortfolioList(items))
}

func applyPortfolioForm(r *http.Request, item *model.PortfolioItem) error {
	item.Title = strings.TrimSpace(r.FormValue("title"))
	item.Description = strings.TrimSpace(r.FormValue("description"))
	item.Category = model.PortfolioCategory(r.FormValue("category"))
	item.Image = strings.TrimSpace(r.FormValue("image"))
	item.Client = strings.TrimSpace(r.FormValue("client"))
	item.CompletionDate = strings.TrimSpace(r.FormValue("completionDate"))
	item.Featured = model.ParseFeatured(r.FormValue("featured"))
	item.Technologies = strings.Join(model.SplitList(r.FormValue("technologies")), ", ")
	item.LiveURL = strings.TrimSpace(r.FormValue("liveUrl"))

	var check validation.Check
	check.Required("title", "Title", item.Title, 200)
	check.Required("description", "Description", item.Description, 5000)
	check.OneOf("category", "Category", item.Category.Valid())
	check.URL("image", "Image URL", item.Image, true)
	check.Required("client", "Client", item.Client, 200)
	check.Date("completionDate", "Completion date", item.CompletionDate)
	check.Required("technologies", "Technologies", item.Technologies, 500)
	check.URL("liveUrl", "Live URL", item.LiveURL, false)
	return check.Err()
}

// ============================================================================
// Blog
// ============================================================================

func (h *DashboardHandler) NewPostDialog(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.BlogForm(content.NewPostDraft().Post(), true, h.uploadService.Enabled()))
}

func (h *DashboardHandler) EditPostDialog(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailed(w, r, err, "Blog post not found")
		return
	}
	ui.Render(w, r, pages.BlogForm(post, false, h.uploadService.Enabled()))
}

// SlugPreview answers title keystrokes in the new-post dialog. A slug the
// admin typed by hand is kept.
func (h *DashboardHandler) SlugPreview(w http.ResponseWriter, r *http.Request) {
	draft := content.NewPostDraft()
	edited := r.URL.Query().Get("slugEdited") == "true"
	if edited {
		draft.SetSlug(r.URL.Query().Get("slug"))
	}
	draft.SetTitle(r.URL.Query().Get("title"))

	ui.Render(w, r, pages.SlugField(draft.Post().Slug, edited))
}

func (h *DashboardHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	draft := content.NewPostDraft()
	draft.SetTitle(strings.TrimSpace(r.FormValue("title")))
	if slug := strings.TrimSpace(r.FormValue("slug")); slug != "" && r.FormValue("slugEdited") == "true" {
		draft.SetSlug(content.Slugify(slug))
	}
	err := applyPostForm(r, draft.Post())
	if err != nil {
		writeFailed(w, r, err, "Invalid blog post")
		return
	}

	_, err = h.blogService.Create(writeCtx(r), user.UID, draft)
	if err != nil {
		slog.Warn("failed to create blog post", "error", err, "user_id", user.UID)
		writeFailed(w, r, err, "Failed to save blog post")
		return
	}

	h.blogWritten(w, r, "Blog post created")
}

func (h *DashboardHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	existing, err := h.blogService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailed(w, r, err, "Blog post not found")
		return
	}

	edit := content.EditPost(existing)
	edit.SetTitle(strings.TrimSpace(r.FormValue("title")))
	edit.SetSlug(content.Slugify(r.FormValue("slug")))
	err = applyPostForm(r, edit.Post())
	if err != nil {
		writeFailed(w, r, err, "Invalid blog post")
		return
	}

	_, err = h.blogService.Update(writeCtx(r), edit)
	if err != nil {
		slog.Warn("failed to update blog post", "error", err, "user_id", user.UID, "post_id", existing.ID)
		writeFailed(w, r, err, "Failed to save blog post")
		return
	}

	h.blogWritten(w, r, "Blog post updated")
}

func (h *DashboardHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	existing, err := h.blogService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailed(w, r, err, "Blog post not found")
		return
	}

	err = h.blogService.Delete(writeCtx(r), content.Key{OwnerID: existing.OwnerID, ID: existing.ID})
	if err != nil {
		slog.Warn("failed to delete blog post", "error", err, "user_id", user.UID, "post_id", existing.ID)
		writeFailed(w, r, err, "Failed to delete blog post")
		return
	}

	h.blogWritten(w, r, "Blog post deleted")
}

func (h *DashboardHandler) blogWritten(w http.ResponseWriter, r *http.Request, message string) {
	posts, err := h.blogService.Posts(r.Context())
	if err != nil {
		slog.Warn("failed to reload blog posts", "error", err)
		w.Header().Set("HX-Reswap", "none")
		ui.RenderOOB(w, r, templ.NopComponent, "innerHTML:#dialog")
		ui.RenderOOB(w, r, toast.Success(message), toast.Target)
		return
	}
	writeSucceeded(w, r, message, pages.BlogList(posts))
}

// applyPostForm sets every field but title and slug, which go through the draft or edit
func applyPostForm(r *http.Request, post *model.BlogPost) error {
	post.Excerpt = strings.TrimSpace(r.FormValue("excerpt"))
	post.Content = r.FormValue("content")
	post.CoverImage = strings.TrimSpace(r.FormValue("coverImage"))
	post.Author = strings.TrimSpace(r.FormValue("author"))
	post.Category = model.BlogCategory(r.FormValue("category"))
	post.Tags = strings.Join(model.SplitList(r.FormValue("tags")), ", ")
	post.Status = model.ParsePublishStatus(r.FormValue("status"))

	var check validation.Check
	check.Required("title", "Title", post.Title, 200)
	check.Required("slug", "Slug", post.Slug, 200)
	check.Required("excerpt", "Excerpt", post.Excerpt, 500)
	check.Required("content", "Content", post.Content, 0)
	check.URL("coverImage", "Cover image URL", post.CoverImage, true)
	check.Required("author", "Author", post.Author, 100)
	check.OneOf("category", "Category", post.Category.Valid())
	return check.Err()
}

// ============================================================================
// Uploads
// ============================================================================

var uploadFields = map[string]string{
	"image":      "Image URL",
	"coverImage": "Cover Image URL",
}

// UploadImage stores an image and answers with the image field holding its URL
func (h *DashboardHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !h.uploadService.Enabled() {
		http.NotFound(w, r)
		return
	}
	user := ctxkeys.User(r.Context())

	name := r.URL.Query().Get("field")
	label, ok := uploadFields[name]
	if !ok {
		http.Error(w, "Unknown field", http.StatusBadRequest)
		return
	}

	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		writeFailed(w, r, err, "Invalid upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()
	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailed(w, r, err, "No file selected")
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.uploadService.UploadImage(r.Context(), user.UID, file, header)
	if err != nil {
		slog.Warn("image upload failed", "error", err, "user_id", user.UID)
		writeFailed(w, r, err, "Upload failed")
		return
	}

	ui.Render(w, r, pages.ImageField(name, label, url, true))
}
