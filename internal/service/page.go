package service

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrPageNotFound = errors.New("page not found")

// Page is a Markdown document with frontmatter, such as the privacy policy
type Page struct {
	Title       string
	Slug        string
	Description string
	Content     string
	LastUpdated string
}

// PageService serves the Markdown pages of one directory of an fs.FS.
// Pages are parsed on first use and cached.
type PageService struct {
	files  fs.FS
	dir    string
	parser *markdown.Parser

	once  sync.Once
	pages map[string]*Page
	err   error
}

func NewPageService(files fs.FS, dir string, parser *markdown.Parser) *PageService {
	return &PageService{files: files, dir: dir, parser: parser}
}

func (s *PageService) Page(slug string) (*Page, error) {
	s.once.Do(func() { s.pages, s.err = s.loadPages() })
	if s.err != nil {
		return nil, s.err
	}

	page, ok := s.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return page, nil
}

// Slugs lists the available pages, for the sitemap
func (s *PageService) Slugs() []string {
	s.once.Do(func() { s.pages, s.err = s.loadPages() })
	slugs := make([]string, 0, len(s.pages))
	for slug := range s.pages {
		slugs = append(slugs, slug)
	}
	return slugs
}

func (s *PageService) loadPages() (map[string]*Page, error) {
	entries, err := fs.ReadDir(s.files, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	pages := make(map[string]*Page, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(entry.Name(), ".md")
		page, err := s.loadPage(slug)
		if err != nil {
			return nil, fmt.Errorf("failed to load page %s: %w", slug, err)
		}
		pages[slug] = page
	}
	return pages, nil
}

func (s *PageService) loadPage(slug string) (*Page, error) {
	source, err := fs.ReadFile(s.files, path.Join(s.dir, slug+".md"))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		// Generate title from slug
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}
	description, _ := meta["description"].(string)

	return &Page{
		Title:       title,
		Slug:        slug,
		Description: description,
		Content:     string(html),
		LastUpdated: formatDate(meta["lastUpdated"]),
	}, nil
}

// formatDate accepts the date shapes YAML frontmatter produces
func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("January 2, 2006")
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339, "January 2, 2006"} {
			t, err := time.Parse(layout, v)
			if err == nil {
				return t.Format("January 2, 2006")
			}
		}
		return v
	default:
		return ""
	}
}
