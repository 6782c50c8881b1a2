package handler

import (
	"log/slog"
	"net/http"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/ui"
	"github.com/pixelplaque/pixelplaque/internal/ui/pages"
)

type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) PortfolioPage(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	items, err := h.portfolioService.Public(r.Context(), category)
	if err != nil {
		slog.Warn("failed to load portfolio items", "error", err)
		items = []*model.PortfolioItem{}
	}

	ui.Render(w, r, pages.Portfolio(items, category))
}
