package model

import (
	"time"
)

// BlogPost is an article managed from the admin dashboard
type BlogPost struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time

	Title       string
	Slug        string
	Excerpt     string
	Content     string // Markdown (HTML allowed)
	CoverImage  string
	Author      string
	Category    BlogCategory
	Tags        string // Comma-separated
	Status      PublishStatus
	PublishedAt *time.Time // nil until first published

	// Computed fields (not stored)
	HTMLContent string
	ReadTime    int
}

func (p *BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}

func (p *BlogPost) TagList() []string {
	return SplitList(p.Tags)
}

// PublishedDate formats the publish date for display
func (p *BlogPost) PublishedDate() string {
	if p.PublishedAt == nil {
		return "Not published"
	}
	return p.PublishedAt.Format("Jan 2, 2006")
}
