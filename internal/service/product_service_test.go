package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kisan_unnati/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_UpdateStatus(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewProductService(repo)
	ctx := context.Background()

	repo.On("UpdateStatus", ctx, int64(1), "approved").Return(true, nil)
	repo.On("FindByID", ctx, int64(1)).Return(&model.Product{ID: 1, Status: "approved"}, nil)

	product, err := svc.UpdateStatus(ctx, 1, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", product.Status)
	repo.AssertExpectations(t)
}

func TestProductService_UpdateStatus_Errors(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewProductService(repo)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 1, "sold")
	assert.ErrorIs(t, err, ErrInvalidProductStatus)
	repo.AssertNotCalled(t, "UpdateStatus")

	repo.On("UpdateStatus", ctx, int64(2), "rejected").Return(false, nil)
	_, err = svc.UpdateStatus(ctx, 2, "rejected")
	assert.ErrorIs(t, err, ErrProductNotFound)

	repo.On("UpdateStatus", ctx, int64(3), "pending").Return(false, errors.New("db down"))
	_, err = svc.UpdateStatus(ctx, 3, "pending")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ExportProductsCSV(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewProductService(repo)
	ctx := context.Background()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.On("FindAll", ctx, model.ProductFilters{}).Return([]model.Product{
		{ID: 1, Name: "Wheat", Category: "crops", Farmer: model.ProductFarmer{Name: "Ramesh"}, Price: 22, Stock: 1200, Status: "approved", CreatedAt: created},
	}, nil)

	buf, err := svc.ExportProductsCSV(ctx, model.ProductFilters{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Name,Category,Farmer,Price,Stock,Status,CreatedAt", lines[0])
	assert.Equal(t, "1,Wheat,crops,Ramesh,22.00,1200,approved,2025-01-02 03:04:05", lines[1])
}
