package model

import "time"

// Shopkeeper is an agri-input shop owner. Shopkeepers authenticate by phone
// and live in their own table, separate from users.
type Shopkeeper struct {
	ID           int       `json:"id"`
	ShopName     string    `json:"shopName"`
	OwnerName    string    `json:"ownerName"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ShopkeeperRegisterRequest is the body of POST /api/auth/register-shopkeeper
type ShopkeeperRegisterRequest struct {
	ShopName        string `json:"shopName"`
	OwnerName       string `json:"ownerName"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	State           string `json:"state"`
	District        string `json:"district"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ShopkeeperLoginRequest is the body of POST /api/auth/login-shopkeeper
type ShopkeeperLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
