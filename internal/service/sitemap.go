package service

import (
	"context"
	"encoding/xml"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/model"
)

// publicRoutes defines all static public routes that should be included in the sitemap
// Add new public pages here (but not admin pages)
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "weekly"},
	{"/about", "0.7", "monthly"},
	{"/services", "0.8", "monthly"},
	{"/portfolio", "0.8", "weekly"},
	{"/blog", "0.8", "daily"},
	{"/contact", "0.5", "monthly"},
}

type SitemapService struct {
	blogService *BlogService
	pageService *PageService
	baseURL     string
}

func NewSitemapService(blogService *BlogService, pageService *PageService, baseURL string) *SitemapService {
	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &SitemapService{
		blogService: blogService,
		pageService: pageService,
		baseURL:     baseURL,
	}
}

// GenerateSitemap lists static routes, published posts and legal pages
func (s *SitemapService) GenerateSitemap(ctx context.Context) ([]byte, error) {
	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  s.staticURLs(),
	}

	blogURLs, err := s.blogURLs(ctx)
	if err != nil {
		// Log error but don't fail - the backend may be briefly unavailable
		slog.Warn("failed to get blog URLs for sitemap", "error", err)
	} else {
		sitemap.URLs = append(sitemap.URLs, blogURLs...)
	}

	sitemap.URLs = append(sitemap.URLs, s.legalURLs()...)

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	result := xml.Header + string(output)
	return []byte(result), nil
}

func (s *SitemapService) staticURLs() []model.SitemapURL {
	today := time.Now().Format("2006-01-02")
	urls := make([]model.SitemapURL, 0, len(publicRoutes))

	for _, route := range publicRoutes {
		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	return urls
}

// blogURLs covers published posts only; drafts must never leak into the sitemap
func (s *SitemapService) blogURLs(ctx context.Context) ([]model.SitemapURL, error) {
	posts, err := s.blogService.Published(ctx, "")
	if err != nil {
		return nil, err
	}

	urls := make([]model.SitemapURL, 0, len(posts))
	for _, post := range posts {
		if post.Slug == "" {
			continue
		}
		lastMod := time.Now().Format("2006-01-02")
		if post.PublishedAt != nil {
			lastMod = post.PublishedAt.Format("2006-01-02")
		}

		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + "/blog/" + post.Slug,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	return urls, nil
}

func (s *SitemapService) legalURLs() []model.SitemapURL {
	slugs := s.pageService.Slugs()
	sort.Strings(slugs)

	urls := make([]model.SitemapURL, 0, len(slugs))
	for _, slug := range slugs {
		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + "/legal/" + slug,
			ChangeFreq: "yearly",
			Priority:   "0.3",
		})
	}
	return urls
}
