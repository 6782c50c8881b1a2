package layouts

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
)

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{"/", "Home"},
	{"/about", "About"},
	{"/services", "Services"},
	{"/portfolio", "Portfolio"},
	{"/blog", "Blog"},
	{"/contact", "Contact"},
}

type Props struct {
	Title       string
	Description string
}

type site struct {
	Name    string
	Tagline string
}

func siteFrom(ctx context.Context) site {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil {
		return site{Name: "PixelPlaque"}
	}
	return site{Name: cfg.AppName, Tagline: cfg.AppTagline}
}

func (p Props) title(s site) string {
	if p.Title == "" {
		return s.Name
	}
	return p.Title + " | " + s.Name
}

func (p Props) description(s site) string {
	if p.Description == "" {
		return s.Tagline
	}
	return p.Description
}

// csrfHeaders is the hx-headers value that makes htmx send the CSRF token
func csrfHeaders(ctx context.Context) string {
	b, _ := json.Marshal(map[string]string{"X-CSRF-Token": ctxkeys.CSRFToken(ctx)})
	return string(b)
}

// active matches a link's own path and, except for Home, anything below it
func (l navLink) active(ctx context.Context) bool {
	current := ctxkeys.URLPath(ctx)
	return l.Href == current || (l.Href != "/" && strings.HasPrefix(current, l.Href+"/"))
}

func activeClass(active bool) string {
	if active {
		return "font-semibold text-fuchsia-500"
	}
	return ""
}
