package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/repository"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProductStatus = errors.New("status must be one of approved, pending, rejected")
)

// ProductService backs the admin marketplace moderation panel
type ProductService interface {
	ListProducts(ctx context.Context, filters model.ProductFilters) ([]model.Product, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Product, error)
	ExportProductsCSV(ctx context.Context, filters model.ProductFilters) (*bytes.Buffer, error)
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) ListProducts(ctx context.Context, filters model.ProductFilters) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateStatus changes only the moderation status and returns the stored listing
func (s *productService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Product, error) {
	if !model.IsValidProductStatus(status) {
		return nil, ErrInvalidProductStatus
	}

	found, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update product status in repo: %w", err)
	}
	if !found {
		return nil, ErrProductNotFound
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ExportProductsCSV renders the filtered listing table for download
func (s *productService) ExportProductsCSV(ctx context.Context, filters model.ProductFilters) (*bytes.Buffer, error) {
	products, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get products for CSV export: %w", err)
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Name", "Category", "Farmer", "Price", "Stock", "Status", "CreatedAt"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			p.Farmer.Name,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Stock),
			p.Status,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return b, nil
}
