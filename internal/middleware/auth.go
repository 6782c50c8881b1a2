package middleware

import (
	"net/http"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/session"
)

const (
	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"
)

// SessionMiddleware loads the cookie-backed session and theme into the request
// context. Every later mutation writes straight back to the response cookies.
func SessionMiddleware(codec *session.SnapshotCodec, secure bool, maxAge time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storage := session.NewCookieStorage(w, r, secure, maxAge)
			ctx := ctxkeys.WithSession(r.Context(), session.NewContext(storage, codec))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin admits only requests whose session passes CheckAuth
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			redirect(w, r, loginPath)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest sends signed-in admins from the login page to the dashboard
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			redirect(w, r, dashboardPath)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	// For HTMX requests, use HX-Redirect header to force full page redirect
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
