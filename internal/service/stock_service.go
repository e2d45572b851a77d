package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/repository"
)

var ErrStockNotFound = errors.New("stock item not found")

const (
	defaultStockSearchLimit = 50
	maxStockSearchLimit     = 100
)

// StockService manages a shopkeeper's inventory. Every mutation is scoped
// to the calling shopkeeper.
type StockService interface {
	Add(ctx context.Context, shopkeeperID int, req *model.StockRequest) (*model.StockItem, error)
	List(ctx context.Context, shopkeeperID int) ([]model.StockItem, error)
	Update(ctx context.Context, shopkeeperID int, id int64, req *model.StockRequest) (*model.StockItem, error)
	Delete(ctx context.Context, shopkeeperID int, id int64) error
	Search(ctx context.Context, search model.StockSearch) ([]model.StockSearchResult, error)
}

type stockService struct {
	repo repository.StockRepository
}

// NewStockService creates a new StockService
func NewStockService(repo repository.StockRepository) StockService {
	return &stockService{repo: repo}
}

func stockFromRequest(shopkeeperID int, req *model.StockRequest) *model.StockItem {
	item := &model.StockItem{
		ShopkeeperID: shopkeeperID,
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		Discount:     req.Discount,
		Unit:         req.Unit,
		Description:  strings.TrimSpace(req.Description),
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	return item
}

func (s *stockService) Add(ctx context.Context, shopkeeperID int, req *model.StockRequest) (*model.StockItem, error) {
	item := stockFromRequest(shopkeeperID, req)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add stock item: %w", err)
	}
	return item, nil
}

func (s *stockService) List(ctx context.Context, shopkeeperID int) ([]model.StockItem, error) {
	items, err := s.repo.ListByShopkeeper(ctx, shopkeeperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return items, nil
}

// Update rewrites the item and returns the stored row. Items of other shops
// are reported as not found.
func (s *stockService) Update(ctx context.Context, shopkeeperID int, id int64, req *model.StockRequest) (*model.StockItem, error) {
	item := stockFromRequest(shopkeeperID, req)
	item.ID = id

	found, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock item in repo: %w", err)
	}
	if !found {
		return nil, ErrStockNotFound
	}

	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload stock item: %w", err)
	}
	if stored == nil {
		return nil, ErrStockNotFound
	}
	return stored, nil
}

func (s *stockService) Delete(ctx context.Context, shopkeeperID int, id int64) error {
	found, err := s.repo.Deactivate(ctx, id, shopkeeperID)
	if err != nil {
		return fmt.Errorf("failed to delete stock item: %w", err)
	}
	if !found {
		return ErrStockNotFound
	}
	return nil
}

func (s *stockService) Search(ctx context.Context, search model.StockSearch) ([]model.StockSearchResult, error) {
	search.Query = strings.TrimSpace(search.Query)
	switch {
	case search.Limit <= 0:
		search.Limit = defaultStockSearchLimit
	case search.Limit > maxStockSearchLimit:
		search.Limit = maxStockSearchLimit
	}
	results, err := s.repo.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search stock: %w", err)
	}
	return results, nil
}

// DashboardService backs the admin overview
type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	repo repository.StatsRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo repository.StatsRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.repo.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}
