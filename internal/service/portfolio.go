package service

import (
	"context"
	"errors"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/content"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

type PortfolioService struct {
	repo *content.Repository[*model.PortfolioItem]
	now  func() time.Time
}

func NewPortfolioService(repo *content.Repository[*model.PortfolioItem]) *PortfolioService {
	return &PortfolioService{repo: repo, now: time.Now}
}

// Items lists every item for the admin dashboard
func (s *PortfolioService) Items(ctx context.Context) ([]*model.PortfolioItem, error) {
	return s.repo.List(ctx, content.ListOptions{})
}

// Public lists items for the portfolio page ("" or "all" = every category)
func (s *PortfolioService) Public(ctx context.Context, category string) ([]*model.PortfolioItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || category == "all" {
		return items, nil
	}

	filtered := make([]*model.PortfolioItem, 0, len(items))
	for _, item := range items {
		if string(item.Category) == category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Featured returns up to n featured items, newest first
func (s *PortfolioService) Featured(ctx context.Context, n int) ([]*model.PortfolioItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]*model.PortfolioItem, 0, n)
	for _, item := range items {
		if len(featured) == n {
			break
		}
		if item.IsFeatured() {
			featured = append(featured, item)
		}
	}
	return featured, nil
}

func (s *PortfolioService) Create(ctx context.Context, ownerID string, draft *content.PortfolioDraft) (*model.PortfolioItem, error) {
	item := *draft.Item()
	item.CreatedAt = s.now().UTC()
	return s.repo.Create(ctx, &item, ownerID)
}

func (s *PortfolioService) Update(ctx context.Context, edit *content.PortfolioEdit) (*model.PortfolioItem, error) {
	return s.repo.Update(ctx, edit.Key(), edit.Item())
}

func (s *PortfolioService) Delete(ctx context.Context, key content.Key) error {
	return s.repo.Delete(ctx, key)
}

func (s *PortfolioService) ByID(ctx context.Context, id string) (*model.PortfolioItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, ErrPortfolioItemNotFound
}
