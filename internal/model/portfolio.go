package model

import (
	"time"
)

// PortfolioItem is a showcased client project
type PortfolioItem struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time

	Title          string
	Description    string
	Category       PortfolioCategory
	Image          string
	Client         string
	CompletionDate string // YYYY-MM-DD
	Featured       Featured
	Technologies   string // Comma-separated
	LiveURL        string // Optional
}

func (p *PortfolioItem) TechnologyList() []string {
	return SplitList(p.Technologies)
}

func (p *PortfolioItem) IsFeatured() bool {
	return p.Featured == FeaturedYes
}
