package repository

import (
	"context"
	"testing"
	"time"

	"kisan_unnati/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "name", "category", "price", "farmer_id", "farmer_name", "status", "stock", "created_at", "updated_at"}

func TestProductRepository_FindAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM products p LEFT JOIN users u ON p.farmer_id = u.id ORDER BY`).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(2), "Onion", "vegetables", 24.5, 1, "Ramesh", "pending", 500, now, now).
			AddRow(int64(1), "Wheat", "crops", 22.0, 1, "Ramesh", "approved", 1200, now, now))

	repo := NewProductRepository(mock)
	products, err := repo.FindAll(context.Background(), model.ProductFilters{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Onion", products[0].Name)
	assert.Equal(t, "Ramesh", products[0].Farmer.Name)
	assert.Equal(t, model.ProductStatusApproved, products[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindAll_WithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	status := "pending"
	category := "seeds"
	mock.ExpectQuery(`WHERE p.status = \$1 AND p.category = \$2`).
		WithArgs(status, category).
		WillReturnRows(pgxmock.NewRows(productCols))

	repo := NewProductRepository(mock)
	products, err := repo.FindAll(context.Background(), model.ProductFilters{Status: &status, Category: &category})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE products SET status = \$1 WHERE id = \$2`).
		WithArgs("approved", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE products SET status = \$1 WHERE id = \$2`).
		WithArgs("rejected", int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewProductRepository(mock)

	found, err := repo.UpdateStatus(context.Background(), 9, "approved")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.UpdateStatus(context.Background(), 404, "rejected")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}
