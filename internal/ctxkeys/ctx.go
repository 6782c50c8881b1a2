package ctxkeys

import (
	"context"

	"github.com/pixelplaque/pixelplaque/internal/config"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/session"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	SessionKey   contextKey = "session"
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
)

func Session(ctx context.Context) *session.Context {
	sc, _ := ctx.Value(SessionKey).(*session.Context)
	return sc
}

func WithSession(ctx context.Context, sc *session.Context) context.Context {
	return context.WithValue(ctx, SessionKey, sc)
}

// User returns the signed-in user, or nil unless the session passes CheckAuth
func User(ctx context.Context) *model.User {
	sc := Session(ctx)
	if sc == nil || !sc.Session.CheckAuth() {
		return nil
	}
	return sc.Session.User()
}

// Theme defaults to dark outside a session-aware request
func Theme(ctx context.Context) session.Theme {
	sc := Session(ctx)
	if sc == nil {
		return session.ThemeDark
	}
	return sc.Theme.Theme()
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}
