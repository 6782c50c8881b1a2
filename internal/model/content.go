package model

import "strings"

// PublishStatus is the visibility of a blog post
type PublishStatus int

const (
	StatusDraft PublishStatus = iota
	StatusPublished
)

func (s PublishStatus) String() string {
	if s == StatusPublished {
		return "published"
	}
	return "draft"
}

func (s PublishStatus) Label() string {
	if s == StatusPublished {
		return "Published"
	}
	return "Draft"
}

// ParsePublishStatus maps the wire value; anything unrecognized is a draft
// so that malformed records never become public.
func ParsePublishStatus(v string) PublishStatus {
	if strings.EqualFold(strings.TrimSpace(v), "published") {
		return StatusPublished
	}
	return StatusDraft
}

// Featured marks a portfolio item for the home page
type Featured int

const (
	FeaturedNo Featured = iota
	FeaturedYes
)

func (f Featured) String() string {
	if f == FeaturedYes {
		return "yes"
	}
	return "no"
}

func ParseFeatured(v string) Featured {
	if strings.EqualFold(strings.TrimSpace(v), "yes") {
		return FeaturedYes
	}
	return FeaturedNo
}

// Option is a value/label pair for category selects and filters
type Option struct {
	Value string
	Label string
}

type PortfolioCategory string

const (
	PortfolioWebDesign         PortfolioCategory = "web-design"
	PortfolioWebDevelopment    PortfolioCategory = "web-development"
	PortfolioGraphicDesign     PortfolioCategory = "graphic-design"
	PortfolioContentGeneration PortfolioCategory = "content-generation"
	PortfolioSaaSEcommerce     PortfolioCategory = "saas-ecommerce"
)

var portfolioCategoryLabels = map[PortfolioCategory]string{
	PortfolioWebDesign:         "Web Design",
	PortfolioWebDevelopment:    "Web Development",
	PortfolioGraphicDesign:     "Graphic Design",
	PortfolioContentGeneration: "Content Generation",
	PortfolioSaaSEcommerce:     "SaaS & E-commerce",
}

// PortfolioCategories lists categories in display order
var PortfolioCategories = []PortfolioCategory{
	PortfolioWebDesign,
	PortfolioWebDevelopment,
	PortfolioGraphicDesign,
	PortfolioContentGeneration,
	PortfolioSaaSEcommerce,
}

func (c PortfolioCategory) Valid() bool {
	_, ok := portfolioCategoryLabels[c]
	return ok
}

// Label returns the display label, or the raw value for unknown categories
func (c PortfolioCategory) Label() string {
	if label, ok := portfolioCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func PortfolioCategoryOptions() []Option {
	opts := make([]Option, 0, len(PortfolioCategories))
	for _, c := range PortfolioCategories {
		opts = append(opts, Option{Value: string(c), Label: c.Label()})
	}
	return opts
}

type BlogCategory string

const (
	BlogTechnology  BlogCategory = "technology"
	BlogDesign      BlogCategory = "design"
	BlogDevelopment BlogCategory = "development"
	BlogBusiness    BlogCategory = "business"
	BlogTutorials   BlogCategory = "tutorials"
)

var blogCategoryLabels = map[BlogCategory]string{
	BlogTechnology:  "Technology",
	BlogDesign:      "Design",
	BlogDevelopment: "Development",
	BlogBusiness:    "Business",
	BlogTutorials:   "Tutorials",
}

var BlogCategories = []BlogCategory{
	BlogTechnology,
	BlogDesign,
	BlogDevelopment,
	BlogBusiness,
	BlogTutorials,
}

func (c BlogCategory) Valid() bool {
	_, ok := blogCategoryLabels[c]
	return ok
}

func (c BlogCategory) Label() string {
	if label, ok := blogCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func BlogCategoryOptions() []Option {
	opts := make([]Option, 0, len(BlogCategories))
	for _, c := range BlogCategories {
		opts = append(opts, Option{Value: string(c), Label: c.Label()})
	}
	return opts
}

// SplitList splits a comma-separated field (tags, technologies) into trimmed values
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
