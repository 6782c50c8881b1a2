package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/content"
	"github.com/pixelplaque/pixelplaque/internal/markdown"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var ErrPostNotFound = errors.New("blog post not found")

type BlogService struct {
	repo   *content.Repository[*model.BlogPost]
	parser *markdown.Parser
	now    func() time.Time
}

func NewBlogService(repo *content.Repository[*model.BlogPost], parser *markdown.Parser) *BlogService {
	return &BlogService{
		repo:   repo,
		parser: parser,
		now:    time.Now,
	}
}

// Posts lists every post, drafts included, for the admin dashboard
func (s *BlogService) Posts(ctx context.Context) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, content.ListOptions{})
}

// Published lists published posts, optionally narrowed to one category ("" or "all" = every category)
func (s *BlogService) Published(ctx context.Context, category string) ([]*model.BlogPost, error) {
	posts, err := s.repo.List(ctx, content.ListOptions{})
	if err != nil {
		return nil, err
	}

	published := make([]*model.BlogPost, 0, len(posts))
	for _, post := range posts {
		if !post.IsPublished() {
			continue
		}
		if category != "" && category != "all" && string(post.Category) != category {
			continue
		}
		post.ReadTime = calculateReadTime(post.Content)
		published = append(published, post)
	}
	return published, nil
}

// PublishedBySlug returns a published post with its Markdown rendered
func (s *BlogService) PublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	posts, err := s.Published(ctx, "")
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.Slug != slug {
			continue
		}
		html, err := s.parser.Parse([]byte(post.Content))
		if err != nil {
			return nil, fmt.Errorf("failed to render post %s: %w", slug, err)
		}
		post.HTMLContent = string(html)
		return post, nil
	}
	return nil, ErrPostNotFound
}

// Create stamps createdAt, and publishedAt only when the post is created published
func (s *BlogService) Create(ctx context.Context, ownerID string, draft *content.PostDraft) (*model.BlogPost, error) {
	post := *draft.Post()
	now := s.now().UTC()

	post.CreatedAt = now
	post.PublishedAt = nil
	if post.IsPublished() {
		post.PublishedAt = &now
	}

	return s.repo.Create(ctx, &post, ownerID)
}

// Update stamps publishedAt the first time a post is published and keeps it afterwards
func (s *BlogService) Update(ctx context.Context, edit *content.PostEdit) (*model.BlogPost, error) {
	post := *edit.Post()

	post.PublishedAt = edit.Original().PublishedAt
	if post.IsPublished() && post.PublishedAt == nil {
		now := s.now().UTC()
		post.PublishedAt = &now
	}

	return s.repo.Update(ctx, edit.Key(), &post)
}

func (s *BlogService) Delete(ctx context.Context, key content.Key) error {
	return s.repo.Delete(ctx, key)
}

// ByID finds a post in the admin listing, for the edit dialog
func (s *BlogService) ByID(ctx context.Context, id string) (*model.BlogPost, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, ErrPostNotFound
}

func calculateReadTime(content string) int {
	words := strings.Fields(content)
	wordsPerMinute := 200
	readTime := len(words) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}
	return readTime
}
