package model

import "time"

const (
	ProductStatusApproved = "approved"
	ProductStatusPending  = "pending"
	ProductStatusRejected = "rejected"
)

// ProductStatuses lists every status an admin can assign
var ProductStatuses = []string{ProductStatusApproved, ProductStatusPending, ProductStatusRejected}

// IsValidProductStatus reports whether s is one of ProductStatuses
func IsValidProductStatus(s string) bool {
	for _, status := range ProductStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ProductFarmer is the seller summary embedded in a listing
type ProductFarmer struct {
	Name string `json:"name"`
}

// Product is a marketplace listing as seen by the moderation panel
type Product struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Price     float64       `json:"price"`
	FarmerID  int           `json:"farmer_id,omitempty"`
	Farmer    ProductFarmer `json:"farmer"`
	Status    string        `json:"status"`
	Stock     int           `json:"stock"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// UpdateProductStatusRequest is the only mutation the moderation panel sends
type UpdateProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved pending rejected"`
}

// ProductFilters narrows the admin product list
type ProductFilters struct {
	Status   *string
	Category *string
}
