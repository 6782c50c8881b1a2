package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/ui"
	"github.com/pixelplaque/pixelplaque/internal/ui/pages"
)

type LegalHandler struct {
	pageService *service.PageService
}

func NewLegalHandler(pageService *service.PageService) *LegalHandler {
	return &LegalHandler{
		pageService: pageService,
	}
}

func (h *LegalHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")

	page, err := h.pageService.Page(slug)
	if err != nil {
		if !errors.Is(err, service.ErrPageNotFound) {
			slog.Error("failed to load legal page", "error", err, "slug", slug)
		}
		w.WriteHeader(http.StatusNotFound)
		ui.Render(w, r, pages.NotFound())
		return
	}

	ui.Render(w, r, pages.Legal(page))
}
