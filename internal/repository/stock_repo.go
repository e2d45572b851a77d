package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisan_unnati/internal/model"

	"github.com/jackc/pgx/v5"
)

// StockRepository defines operations on a shop's inventory
type StockRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	FindByID(ctx context.Context, id int64) (*model.StockItem, error)
	ListByShopkeeper(ctx context.Context, shopkeeperID int) ([]model.StockItem, error)
	Update(ctx context.Context, item *model.StockItem) (bool, error)
	Deactivate(ctx context.Context, id int64, shopkeeperID int) (bool, error)
	Search(ctx context.Context, search model.StockSearch) ([]model.StockSearchResult, error)
}

type stockRepository struct {
	db DBTX
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db DBTX) StockRepository {
	return &stockRepository{db: db}
}

const stockColumns = `s.id, s.shopkeeper_id, s.name, s.category, s.price::float8, s.discount::float8, s.quantity, s.unit, s.description, s.is_active, s.created_at, s.updated_at`

func stockScanTargets(item *model.StockItem) []any {
	return []any{&item.ID, &item.ShopkeeperID, &item.Name, &item.Category, &item.Price, &item.Discount,
		&item.Quantity, &item.Unit, &item.Description, &item.IsActive, &item.CreatedAt, &item.UpdatedAt}
}

func (r *stockRepository) Create(ctx context.Context, item *model.StockItem) error {
	sql := `INSERT INTO shop_stock (shopkeeper_id, name, category, price, discount, quantity, unit, description)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, is_active, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, item.ShopkeeperID, item.Name, item.Category, item.Price, item.Discount,
		item.Quantity, item.Unit, item.Description).Scan(&item.ID, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create stock item: %w", err)
	}
	return nil
}

// FindByID retrieves an active stock item. A missing or deleted item is (nil, nil).
func (r *stockRepository) FindByID(ctx context.Context, id int64) (*model.StockItem, error) {
	item := &model.StockItem{}
	err := r.db.QueryRow(ctx, `SELECT `+stockColumns+` FROM shop_stock s WHERE s.id = $1 AND s.is_active`, id).
		Scan(stockScanTargets(item)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find stock item by ID: %w", err)
	}
	return item, nil
}

// ListByShopkeeper returns a shop's active items, newest first
func (r *stockRepository) ListByShopkeeper(ctx context.Context, shopkeeperID int) ([]model.StockItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+stockColumns+` FROM shop_stock s WHERE s.shopkeeper_id = $1 AND s.is_active ORDER BY s.created_at DESC, s.id DESC`,
		shopkeeperID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock: %w", err)
	}
	defer rows.Close()

	items := []model.StockItem{}
	for rows.Next() {
		var item model.StockItem
		if err := rows.Scan(stockScanTargets(&item)...); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock rows: %w", err)
	}
	return items, nil
}

// Update rewrites an item owned by item.ShopkeeperID. It reports false when
// the item is missing, deleted or belongs to another shop.
func (r *stockRepository) Update(ctx context.Context, item *model.StockItem) (bool, error) {
	sql := `UPDATE shop_stock
            SET name = $1, category = $2, price = $3, discount = $4, quantity = $5, unit = $6, description = $7
            WHERE id = $8 AND shopkeeper_id = $9 AND is_active`
	cmdTag, err := r.db.Exec(ctx, sql, item.Name, item.Category, item.Price, item.Discount, item.Quantity,
		item.Unit, item.Description, item.ID, item.ShopkeeperID)
	if err != nil {
		return false, fmt.Errorf("failed to update stock item: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Deactivate soft-deletes an item owned by shopkeeperID
func (r *stockRepository) Deactivate(ctx context.Context, id int64, shopkeeperID int) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE shop_stock SET is_active = FALSE WHERE id = $1 AND shopkeeper_id = $2 AND is_active`, id, shopkeeperID)
	if err != nil {
		return false, fmt.Errorf("failed to delete stock item: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Search matches active items of active shops by name (case-insensitive)
// and exact category
func (r *stockRepository) Search(ctx context.Context, search model.StockSearch) ([]model.StockSearchResult, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + stockColumns + `, k.shop_name, k.location
                       FROM shop_stock s JOIN shopkeepers k ON s.shopkeeper_id = k.id
                       WHERE s.is_active AND k.is_active`)

	args := []interface{}{}
	argCount := 1
	if search.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.name ILIKE $%d", argCount))
		args = append(args, "%"+search.Query+"%")
		argCount++
	}
	if search.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.category = $%d", argCount))
		args = append(args, search.Category)
		argCount++
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.price ASC, s.id ASC LIMIT $%d", argCount))
	args = append(args, search.Limit)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search stock: %w", err)
	}
	defer rows.Close()

	results := []model.StockSearchResult{}
	for rows.Next() {
		var res model.StockSearchResult
		targets := append(stockScanTargets(&res.StockItem), &res.ShopName, &res.Location)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan stock search row: %w", err)
		}
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock search rows: %w", err)
	}
	return results, nil
}
