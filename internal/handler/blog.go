package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/ui"
	"github.com/pixelplaque/pixelplaque/internal/ui/pages"
)

// BlogHandler serves the public blog; drafts are never visible here
type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	posts, err := h.blogService.Published(r.Context(), category)
	if err != nil {
		slog.Warn("failed to load blog posts", "error", err)
		posts = []*model.BlogPost{}
	}

	ui.Render(w, r, pages.Blog(posts, category))
}

func (h *BlogHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := h.blogService.PublishedBySlug(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, service.ErrPostNotFound) {
			slog.Error("failed to load blog post", "error", err, "slug", slug)
		}
		w.WriteHeader(http.StatusNotFound)
		ui.Render(w, r, pages.NotFound())
		return
	}

	ui.Render(w, r, pages.BlogPost(post))
}
