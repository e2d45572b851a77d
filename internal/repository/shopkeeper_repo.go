package repository

import (
	"context"
	"errors"
	"fmt"

	"kisan_unnati/internal/model"

	"github.com/jackc/pgx/v5"
)

// ShopkeeperRepository defines operations for shopkeeper accounts
type ShopkeeperRepository interface {
	Create(ctx context.Context, s *model.Shopkeeper) error
	FindByPhone(ctx context.Context, phone string) (*model.Shopkeeper, error)
	FindByID(ctx context.Context, id int) (*model.Shopkeeper, error)
	ListActive(ctx context.Context, limit int) ([]model.Shopkeeper, error)
}

type shopkeeperRepository struct {
	db DBTX
}

// NewShopkeeperRepository creates a new ShopkeeperRepository
func NewShopkeeperRepository(db DBTX) ShopkeeperRepository {
	return &shopkeeperRepository{db: db}
}

const shopkeeperColumns = `id, shop_name, owner_name, phone, location, state, district, password_hash, is_active, created_at`

func scanShopkeeper(row pgx.Row) (*model.Shopkeeper, error) {
	s := &model.Shopkeeper{}
	err := row.Scan(&s.ID, &s.ShopName, &s.OwnerName, &s.Phone, &s.Location, &s.State, &s.District,
		&s.PasswordHash, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *shopkeeperRepository) Create(ctx context.Context, s *model.Shopkeeper) error {
	sql := `INSERT INTO shopkeepers (shop_name, owner_name, phone, location, state, district, password_hash, is_active, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, sql, s.ShopName, s.OwnerName, s.Phone, s.Location, s.State, s.District,
		s.PasswordHash, s.IsActive, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create shopkeeper: %w", err)
	}
	return nil
}

// FindByPhone retrieves a shopkeeper by phone. A missing shopkeeper is (nil, nil).
func (r *shopkeeperRepository) FindByPhone(ctx context.Context, phone string) (*model.Shopkeeper, error) {
	s, err := scanShopkeeper(r.db.QueryRow(ctx, `SELECT `+shopkeeperColumns+` FROM shopkeepers WHERE phone = $1`, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shopkeeper by phone: %w", err)
	}
	return s, nil
}

func (r *shopkeeperRepository) FindByID(ctx context.Context, id int) (*model.Shopkeeper, error) {
	s, err := scanShopkeeper(r.db.QueryRow(ctx, `SELECT `+shopkeeperColumns+` FROM shopkeepers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shopkeeper by ID: %w", err)
	}
	return s, nil
}

// ListActive returns up to limit active shops, newest first
func (r *shopkeeperRepository) ListActive(ctx context.Context, limit int) ([]model.Shopkeeper, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+shopkeeperColumns+` FROM shopkeepers WHERE is_active = TRUE ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopkeepers: %w", err)
	}
	defer rows.Close()

	shops := []model.Shopkeeper{}
	for rows.Next() {
		s, err := scanShopkeeper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopkeeper row: %w", err)
		}
		shops = append(shops, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopkeeper rows: %w", err)
	}
	return shops, nil
}
