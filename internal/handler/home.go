package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/ui"
	"github.com/pixelplaque/pixelplaque/internal/ui/components/toast"
	"github.com/pixelplaque/pixelplaque/internal/ui/pages"
	"github.com/pixelplaque/pixelplaque/internal/validation"
)

const featuredOnHome = 3

type HomeHandler struct {
	portfolioService *service.PortfolioService
	emailService     *service.EmailService
}

func NewHomeHandler(portfolioService *service.PortfolioService, emailService *service.EmailService) *HomeHandler {
	return &HomeHandler{
		portfolioService: portfolioService,
		emailService:     emailService,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	featured, err := h.portfolioService.Featured(r.Context(), featuredOnHome)
	if err != nil {
		// The home page still renders without the showcase
		slog.Warn("failed to load featured portfolio items", "error", err)
		featured = []*model.PortfolioItem{}
	}
	ui.Render(w, r, pages.Home(featured))
}

func (h *HomeHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.About())
}

func (h *HomeHandler) ServicesPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Services())
}

func (h *HomeHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Contact())
}

// SendContact forwards the contact form to the support inbox
func (h *HomeHandler) SendContact(w http.ResponseWriter, r *http.Request) {
	values := pages.ContactValues{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}

	var check validation.Check
	check.Required("name", "Name", values.Name, 100)
	check.Email("email", values.Email)
	check.Required("subject", "Subject", values.Subject, 200)
	check.Required("message", "Message", values.Message, 5000)
	err := check.Err()
	if err != nil {
		ui.RenderOOB(w, r, toast.Error(err.Error()), toast.Target)
		ui.Render(w, r, pages.ContactForm(values))
		return
	}

	err = h.emailService.SendContactMessage(r.Context(), service.ContactMessage(values))
	if err != nil {
		slog.Error("failed to send contact message", "error", err)
		ui.RenderOOB(w, r, toast.Error("Your message could not be sent. Please try again later."), toast.Target)
		ui.Render(w, r, pages.ContactForm(values))
		return
	}

	ui.RenderOOB(w, r, toast.Toast(toast.Props{
		Title:       "Message Sent!",
		Description: "We'll get back to you within 24 hours.",
		Variant:     toast.VariantSuccess,
		Icon:        true,
		Dismissible: true,
	}), toast.Target)
	ui.Render(w, r, pages.ContactForm(pages.ContactValues{}))
}

// ToggleTheme flips the persisted theme and reloads the page
func (h *HomeHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	sc := ctxkeys.Session(r.Context())
	if sc != nil {
		sc.Theme.Toggle()
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	// Only the path of the referer, so the redirect stays on this site
	back := "/"
	if ref, err := url.Parse(r.Header.Get("Referer")); err == nil && strings.HasPrefix(ref.Path, "/") {
		back = ref.Path
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	ui.Render(w, r, pages.NotFound())
}
