package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisan_unnati/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the moderation operations on marketplace listings
type ProductRepository interface {
	FindAll(ctx context.Context, filters model.ProductFilters) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `SELECT p.id, p.name, p.category, p.price::float8, COALESCE(p.farmer_id, 0), COALESCE(u.name, ''), p.status, p.stock, p.created_at, p.updated_at
                       FROM products p LEFT JOIN users u ON p.farmer_id = u.id`

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.FarmerID, &p.Farmer.Name,
		&p.Status, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindAll retrieves listings with optional filters, newest first
func (r *productRepository) FindAll(ctx context.Context, filters model.ProductFilters) ([]model.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(productSelect)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argCount))
		args = append(args, *filters.Category)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY p.created_at DESC, p.id DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves one listing. A missing listing is (nil, nil).
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// UpdateStatus sets the moderation status. It reports false when no row matched.
func (r *productRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `UPDATE products SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update product status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
