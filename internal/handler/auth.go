package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pixelplaque/pixelplaque/internal/auth"
	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/ui"
	"github.com/pixelplaque/pixelplaque/internal/ui/components/toast"
	"github.com/pixelplaque/pixelplaque/internal/ui/pages"
)

// AuthHandler serves the email + one-time-code admin sign-in
type AuthHandler struct {
	client backend.Auth
}

func NewAuthHandler(client backend.Auth) *AuthHandler {
	return &AuthHandler{client: client}
}

func (h *AuthHandler) flow(r *http.Request) *auth.Flow {
	sc := ctxkeys.Session(r.Context())
	return auth.LoadFlow(h.client, sc.Session, sc.Storage)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	ui.Render(w, r, pages.Login(flow.State(), flow.Email()))
}

func (h *AuthHandler) SubmitEmail(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	email := strings.TrimSpace(r.FormValue("email"))

	err := flow.SubmitEmail(r.Context(), email)
	if err != nil {
		slog.Warn("login code request failed", "error", err)
		ui.RenderOOB(w, r, toast.Error(errs.UserMessage(err, "Failed to send code")), toast.Target)
		ui.Render(w, r, pages.LoginCard(flow.State(), email))
		return
	}

	ui.RenderOOB(w, r, toast.Toast(toast.Props{
		Title:       "Code Sent",
		Description: "Check your email for the 6-digit code.",
		Variant:     toast.VariantSuccess,
		Icon:        true,
		Dismissible: true,
	}), toast.Target)
	ui.Render(w, r, pages.LoginCard(flow.State(), flow.Email()))
}

func (h *AuthHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	code := strings.TrimSpace(r.FormValue("code"))

	err := flow.SubmitCode(r.Context(), flow.Email(), code)
	if errors.Is(err, auth.ErrWrongState) {
		ui.RenderOOB(w, r, toast.Error("Please request a new code."), toast.Target)
		ui.Render(w, r, pages.LoginCard(flow.State(), ""))
		return
	}
	if err != nil {
		slog.Warn("login code verification failed", "error", err)
		ui.RenderOOB(w, r, toast.Error(errs.UserMessage(err, "Invalid code")), toast.Target)
		ui.Render(w, r, pages.LoginCard(flow.State(), flow.Email()))
		return
	}

	slog.Info("admin signed in", "user_id", ctxkeys.Session(r.Context()).Session.User().UID)
	redirect(w, r, "/admin/dashboard")
}

// ResetEmail backs out of the code step ("Use Different Email")
func (h *AuthHandler) ResetEmail(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	flow.UseDifferentEmail()
	ui.Render(w, r, pages.LoginCard(flow.State(), ""))
}

// Logout always signs the browser out, even when the backend call fails
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sc := ctxkeys.Session(r.Context())

	err := sc.Session.Logout(r.Context(), h.client)
	if err != nil {
		slog.Warn("remote logout failed", "error", err)
	}

	redirect(w, r, "/")
}

// redirect uses HX-Redirect for htmx requests so the whole page navigates
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
