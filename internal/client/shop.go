package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"kisan_unnati/internal/model"
)

// LowStockThreshold is the quantity below which an item counts as low
const LowStockThreshold = 10

const stockPath = "/api/stock"

// StockSummary is the header of the shopkeeper dashboard
type StockSummary struct {
	TotalItems int
	TotalValue float64
	LowStock   int
	AvgPrice   float64
}

// Summarize totals a shop's stock the way the dashboard cards show it
func Summarize(items []model.StockItem) StockSummary {
	var s StockSummary
	var priceSum float64
	for _, item := range items {
		s.TotalItems++
		s.TotalValue += item.Price * float64(item.Quantity)
		priceSum += item.Price
		if item.Quantity < LowStockThreshold {
			s.LowStock++
		}
	}
	if s.TotalItems > 0 {
		s.AvgPrice = priceSum / float64(s.TotalItems)
	}
	return s
}

// ShopDashboard is everything the shopkeeper dashboard renders
type ShopDashboard struct {
	Shop    model.Shopkeeper
	Stock   []model.StockItem
	Summary StockSummary
}

// MyShop loads the logged-in shopkeeper's own shop
func (c *Client) MyShop(ctx context.Context, token string) (*model.Shopkeeper, error) {
	var shop model.Shopkeeper
	if err := c.call(ctx, http.MethodGet, "/api/shopkeepers/me", token, nil, &shop, "दुकान की जानकारी लोड नहीं हो सकी"); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (c *Client) ListStock(ctx context.Context, token string) ([]model.StockItem, error) {
	items := []model.StockItem{}
	if err := c.call(ctx, http.MethodGet, stockPath, token, nil, &items, "स्टॉक लोड नहीं हो सका"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddStock(ctx context.Context, token string, req model.StockRequest) (*model.StockItem, error) {
	var item model.StockItem
	if err := c.call(ctx, http.MethodPost, stockPath, token, req, &item, "सामान जोड़ने में त्रुटि हुई"); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateStock(ctx context.Context, token string, id int64, req model.StockRequest) (*model.StockItem, error) {
	var item model.StockItem
	path := fmt.Sprintf("%s/%d", stockPath, id)
	if err := c.call(ctx, http.MethodPut, path, token, req, &item, "अपडेट में त्रुटि हुई"); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteStock(ctx context.Context, token string, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", stockPath, id), token, nil, nil, "डिलीट में त्रुटि हुई")
}

// SearchStock looks up items across all shops. No login is needed.
func (c *Client) SearchStock(ctx context.Context, query, category string) ([]model.StockSearchResult, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if category != "" {
		params.Set("category", category)
	}
	results := []model.StockSearchResult{}
	if err := c.call(ctx, http.MethodGet, stockPath+"/search?"+params.Encode(), "", nil, &results, "खोज में त्रुटि हुई"); err != nil {
		return nil, err
	}
	return results, nil
}

// ShopDashboardView is the shopkeeper-only dashboard. Logged-out visitors
// go to the login page; other roles are sent to the landing page. On entry
// it fills dst with the shop, its stock and the summary.
func (c *Client) ShopDashboardView(dst *ShopDashboard) View {
	return View{
		Name:       "shopkeeper-dashboard",
		Roles:      []string{model.RoleShopkeeper},
		RedirectTo: RouteLogin,
		Load: func(ctx context.Context, token string) error {
			shop, err := c.MyShop(ctx, token)
			if err != nil {
				return err
			}
			items, err := c.ListStock(ctx, token)
			if err != nil {
				return err
			}
			dst.Shop = *shop
			dst.Stock = items
			dst.Summary = Summarize(items)
			return nil
		},
	}
}

// DashboardStats loads the admin overview counts
func (c *Client) DashboardStats(ctx context.Context, token string) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.call(ctx, http.MethodGet, "/api/admin/dashboard", token, nil, &stats, "Failed to load dashboard"); err != nil {
		return nil, err
	}
	return &stats, nil
}
