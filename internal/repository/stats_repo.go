package repository

import (
	"context"
	"fmt"

	"kisan_unnati/internal/model"
)

// StatsRepository aggregates counts for the admin dashboard
type StatsRepository interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type statsRepository struct {
	db DBTX
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db DBTX) StatsRepository {
	return &statsRepository{db: db}
}

const dashboardSQL = `SELECT
	(SELECT COUNT(*) FROM users),
	(SELECT COUNT(*) FROM users WHERE role = 'farmer'),
	(SELECT COUNT(*) FROM users WHERE role = 'buyer'),
	(SELECT COUNT(*) FROM users WHERE role = 'admin'),
	(SELECT COUNT(*) FROM shopkeepers),
	(SELECT COUNT(*) FROM shopkeepers WHERE is_active),
	(SELECT COUNT(*) FROM products),
	(SELECT COUNT(*) FROM products WHERE status = 'approved'),
	(SELECT COUNT(*) FROM products WHERE status = 'pending'),
	(SELECT COUNT(*) FROM products WHERE status = 'rejected')`

func (r *statsRepository) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	err := r.db.QueryRow(ctx, dashboardSQL).Scan(
		&s.Users.Total, &s.Users.Farmers, &s.Users.Buyers, &s.Users.Admins,
		&s.Shopkeepers.Total, &s.Shopkeepers.Active,
		&s.Products.Total, &s.Products.Approved, &s.Products.Pending, &s.Products.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard counts: %w", err)
	}
	return s, nil
}
