package model

import "time"

// StockItem is one agri-input line (seed, fertiliser, pesticide, tool) on a
// shopkeeper's shelf. Deleting an item only clears IsActive.
type StockItem struct {
	ID           int64     `json:"id"`
	ShopkeeperID int       `json:"shopKeeperId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Discount     float64   `json:"discount"`
	Quantity     int       `json:"quantity"`
	Unit         string    `json:"unit"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StockRequest is the body of POST and PUT /api/stock. The owning shop is
// always the authenticated shopkeeper, never a body field.
type StockRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Category    string   `json:"category" binding:"required,oneof=खाद बीज कीटनाशक उर्वरक उपकरण अन्य"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Discount    float64  `json:"discount" binding:"gte=0,lte=100"`
	Quantity    *int     `json:"quantity" binding:"required,gte=0"`
	Unit        string   `json:"unit" binding:"required,oneof=kg लीटर बोरी पैक थैली बॉक्स अन्य"`
	Description string   `json:"description"`
}

// StockSearch narrows the public stock search
type StockSearch struct {
	Query    string
	Category string
	Limit    int
}

// StockSearchResult is a stock line with the shop that carries it
type StockSearchResult struct {
	StockItem
	ShopName string `json:"shopName"`
	Location string `json:"location"`
}

// DashboardStats is the admin overview: account counts by role and
// listings by moderation status
type DashboardStats struct {
	Users struct {
		Total   int `json:"total"`
		Farmers int `json:"farmers"`
		Buyers  int `json:"buyers"`
		Admins  int `json:"admins"`
	} `json:"users"`
	Shopkeepers struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"shopkeepers"`
	Products struct {
		Total    int `json:"total"`
		Approved int `json:"approved"`
		Pending  int `json:"pending"`
		Rejected int `json:"rejected"`
	} `json:"products"`
}
