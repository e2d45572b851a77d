package model

import "time"

const (
	RoleFarmer     = "farmer"
	RoleBuyer      = "buyer"
	RoleShopkeeper = "shopkeeper"
	RoleAdmin      = "admin"
)

// Location is the postal address a user registers with
type Location struct {
	Address  string `json:"address"`
	District string `json:"district"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// User represents a farmer, buyer or admin account
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	Location     Location  `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the user shape returned alongside a token
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips everything but the profile fields clients keep in their session
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Phone    string   `json:"phone" binding:"required"`
	Role     string   `json:"role" binding:"omitempty,oneof=farmer buyer"`
	Location Location `json:"location"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
