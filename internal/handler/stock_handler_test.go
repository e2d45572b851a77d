package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"kisan_unnati/internal/middleware"
	"kisan_unnati/internal/model"
	"kisan_unnati/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStockService struct{ mock.Mock }

func (m *mockStockService) Add(ctx context.Context, shopkeeperID int, req *model.StockRequest) (*model.StockItem, error) {
	args := m.Called(shopkeeperID, req.Name)
	item, _ := args.Get(0).(*model.StockItem)
	return item, args.Error(1)
}

func (m *mockStockService) List(ctx context.Context, shopkeeperID int) ([]model.StockItem, error) {
	args := m.Called(shopkeeperID)
	items, _ := args.Get(0).([]model.StockItem)
	return items, args.Error(1)
}

func (m *mockStockService) Update(ctx context.Context, shopkeeperID int, id int64, req *model.StockRequest) (*model.StockItem, error) {
	args := m.Called(shopkeeperID, id)
	item, _ := args.Get(0).(*model.StockItem)
	return item, args.Error(1)
}

func (m *mockStockService) Delete(ctx context.Context, shopkeeperID int, id int64) error {
	return m.Called(shopkeeperID, id).Error(0)
}

func (m *mockStockService) Search(ctx context.Context, search model.StockSearch) ([]model.StockSearchResult, error) {
	args := m.Called(search)
	results, _ := args.Get(0).([]model.StockSearchResult)
	return results, args.Error(1)
}

func newStockRouter(svc service.StockService) *gin.Engine {
	r := gin.New()
	NewStockHandler(svc).RegisterStockRoutes(r.Group("/api"), middleware.JWTAuthMiddleware(testJWT), middleware.ShopkeeperMiddleware())
	return r
}

func shopToken(t *testing.T, id int) string {
	t.Helper()
	token, err := testJWT.GenerateToken(id, model.RoleShopkeeper)
	require.NoError(t, err)
	return token
}

func TestAddStock(t *testing.T) {
	svc := &mockStockService{}
	r := newStockRouter(svc)

	svc.On("Add", 3, "DAP").Return(&model.StockItem{ID: 9, ShopkeeperID: 3, Name: "DAP"}, nil)

	body := map[string]any{"name": "DAP", "category": "खाद", "price": 1350, "quantity": 40, "unit": "बोरी"}
	w := doJSON(r, http.MethodPost, "/api/stock", shopToken(t, 3), body)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "सामान सफलतापूर्वक जोड़ा गया", resp["message"])
	assert.Equal(t, "DAP", resp["data"].(map[string]any)["name"])
}

func TestAddStock_Validation(t *testing.T) {
	svc := &mockStockService{}
	r := newStockRouter(svc)

	// unknown unit, and quantity missing
	body := map[string]any{"name": "DAP", "category": "खाद", "price": 1350, "unit": "ton"}
	w := doJSON(r, http.MethodPost, "/api/stock", shopToken(t, 3), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "कृपया सभी जरूरी जानकारी भरें", decode(t, w)["message"])

	// a zero quantity is a sold-out item, not a missing field
	svc.On("Add", 3, "Urea").Return(&model.StockItem{ID: 10, Name: "Urea"}, nil)
	body = map[string]any{"name": "Urea", "category": "खाद", "price": 266.5, "quantity": 0, "unit": "बोरी"}
	w = doJSON(r, http.MethodPost, "/api/stock", shopToken(t, 3), body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStockRoutes_RequireShopkeeper(t *testing.T) {
	svc := &mockStockService{}
	r := newStockRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/stock", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	farmerToken, _ := testJWT.GenerateToken(3, model.RoleFarmer)
	w = doJSON(r, http.MethodGet, "/api/stock", farmerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything)
}

func TestListStock(t *testing.T) {
	svc := &mockStockService{}
	r := newStockRouter(svc)

	svc.On("List", 3).Return([]model.StockItem{{ID: 9, Name: "DAP"}, {ID: 10, Name: "Urea"}}, nil)

	w := doJSON(r, http.MethodGet, "/api/stock", shopToken(t, 3), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 2)
}

func TestUpdateAndDeleteStock_NotFound(t *testing.T) {
	svc := &mockStockService{}
	r := newStockRouter(svc)

	svc.On("Update", 4, int64(9)).Return(nil, service.ErrStockNotFound)
	svc.On("Delete", 4, int64(9)).Return(service.ErrStockNotFound)
	svc.On("Delete", 3, int64(9)).Return(nil)
	svc.On("Delete", 3, int64(10)).Return(errors.New("db down"))

	body := map[string]any{"name": "DAP", "category": "खाद", "price": 1300, "quantity": 35, "unit": "बोरी"}
	w := doJSON(r, http.MethodPut, "/api/stock/9", shopToken(t, 4), body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "सामान नहीं मिला", decode(t, w)["message"])

	w = doJSON(r, http.MethodDelete, "/api/stock/9", shopToken(t, 4), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/stock/9", shopToken(t, 3), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/stock/10", shopToken(t, 3), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/stock/abc", shopToken(t, 3), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchStock_Public(t *testing.T) {
	svc := &mockStockService{}
	r := newStockRouter(svc)

	svc.On("Search", model.StockSearch{Query: "urea", Category: "खाद", Limit: 5}).
		Return([]model.StockSearchResult{{StockItem: model.StockItem{Name: "Urea"}, ShopName: "Kisan Seva Kendra"}}, nil)

	w := doJSON(r, http.MethodGet, "/api/stock/search?query=urea&category=%E0%A4%96%E0%A4%BE%E0%A4%A6&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decode(t, w)["data"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Kisan Seva Kendra", results[0].(map[string]any)["shopName"])

	w = doJSON(r, http.MethodGet, "/api/stock/search?limit=many", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
