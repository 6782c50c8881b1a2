package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/pixelplaque/pixelplaque/internal/config"
	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCodec = session.NewSnapshotCodec("secret", time.Hour)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// signedInRequest carries both halves of a valid session
func signedInRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	snapshot, err := testCodec.Encode(&model.User{UID: "u-1", Email: "admin@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: session.TokenKey, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: session.SnapshotKey, Value: snapshot})
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()
	h := Chain(RequireAdmin(ok), SessionMiddleware(testCodec, false, time.Hour))

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("htmx gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.Header.Set("HX-Request", "true")
		rec := serve(h, req)
		assert.Equal(t, "/admin/login", rec.Header().Get("HX-Redirect"))
	})

	t.Run("token without user is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.TokenKey, Value: "tok"})
		rec := serve(h, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("user without token is rejected", func(t *testing.T) {
		req := signedInRequest(t, http.MethodGet, "/admin/dashboard")
		req.Header.Del("Cookie")
		snapshot, err := testCodec.Encode(&model.User{UID: "u-1"})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: session.SnapshotKey, Value: snapshot})
		rec := serve(h, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("signed in passes", func(t *testing.T) {
		rec := serve(h, signedInRequest(t, http.MethodGet, "/admin/dashboard"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireGuest(t *testing.T) {
	t.Parallel()
	h := Chain(RequireGuest(ok), SessionMiddleware(testCodec, false, time.Hour))

	rec := serve(h, signedInRequest(t, http.MethodGet, "/admin/login"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddlewareExposesTheme(t *testing.T) {
	t.Parallel()

	var theme session.Theme
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme = ctxkeys.Theme(r.Context())
	}), SessionMiddleware(testCodec, false, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.ThemeKey, Value: "light"})
	serve(h, req)
	assert.Equal(t, session.ThemeLight, theme)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	var nonce string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = templ.GetNonce(r.Context())
	})
	cfg := &config.Config{AppEnv: "production", S3Endpoint: "https://files.example.com/"}
	h := Chain(inner, Config(cfg), NonceMiddleware, SecurityHeaders)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	csp := rec.Header().Get("Content-Security-Policy")

	require.NotEmpty(t, nonce)
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "https://files.example.com")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCSRFProtection(t *testing.T) {
	t.Parallel()
	h := CSRFProtection(http.HandlerFunc(ok))

	// A GET issues the token cookie
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		assert.Equal(t, http.StatusForbidden, serve(h, req).Code)
	})

	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		req.Header.Set(csrfHeader, token)
		assert.Equal(t, http.StatusOK, serve(h, req).Code)
	})

	t.Run("form token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(csrfFormField+"="+token))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		assert.Equal(t, http.StatusOK, serve(h, req).Code)
	})

	t.Run("htmx rejection toasts without swapping", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/admin/blog/1", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		req.Header.Set("HX-Request", "true")
		req.Header.Set(csrfHeader, "stale")
		rec := serve(h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
		assert.Contains(t, rec.Body.String(), "Reload the page")
	})
}

func TestCSRFCookieFollowsSessionExpiry(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{AppEnv: "production", SessionExpiry: 48 * time.Hour}
	h := Chain(http.HandlerFunc(ok), Config(cfg), CSRFProtection)

	cookies := serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.Equal(t, int((48 * time.Hour).Seconds()), cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getClientIP(req))
}
