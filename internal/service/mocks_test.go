package service

import (
	"context"

	"kisan_unnati/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockShopkeeperRepo struct{ mock.Mock }

func (m *mockShopkeeperRepo) Create(ctx context.Context, s *model.Shopkeeper) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = 1
	}
	return args.Error(0)
}

func (m *mockShopkeeperRepo) FindByPhone(ctx context.Context, phone string) (*model.Shopkeeper, error) {
	args := m.Called(ctx, phone)
	s, _ := args.Get(0).(*model.Shopkeeper)
	return s, args.Error(1)
}

func (m *mockShopkeeperRepo) FindByID(ctx context.Context, id int) (*model.Shopkeeper, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Shopkeeper)
	return s, args.Error(1)
}

func (m *mockShopkeeperRepo) ListActive(ctx context.Context, limit int) ([]model.Shopkeeper, error) {
	args := m.Called(ctx, limit)
	s, _ := args.Get(0).([]model.Shopkeeper)
	return s, args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) FindAll(ctx context.Context, filters model.ProductFilters) ([]model.Product, error) {
	args := m.Called(ctx, filters)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

type mockStockRepo struct{ mock.Mock }

func (m *mockStockRepo) Create(ctx context.Context, item *model.StockItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.ID = 1
		item.IsActive = true
	}
	return args.Error(0)
}

func (m *mockStockRepo) FindByID(ctx context.Context, id int64) (*model.StockItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*model.StockItem)
	return item, args.Error(1)
}

func (m *mockStockRepo) ListByShopkeeper(ctx context.Context, shopkeeperID int) ([]model.StockItem, error) {
	args := m.Called(ctx, shopkeeperID)
	items, _ := args.Get(0).([]model.StockItem)
	return items, args.Error(1)
}

func (m *mockStockRepo) Update(ctx context.Context, item *model.StockItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *mockStockRepo) Deactivate(ctx context.Context, id int64, shopkeeperID int) (bool, error) {
	args := m.Called(ctx, id, shopkeeperID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStockRepo) Search(ctx context.Context, search model.StockSearch) ([]model.StockSearchResult, error) {
	args := m.Called(ctx, search)
	results, _ := args.Get(0).([]model.StockSearchResult)
	return results, args.Error(1)
}

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*model.DashboardStats)
	return s, args.Error(1)
}
