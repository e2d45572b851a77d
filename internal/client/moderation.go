package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"kisan_unnati/internal/model"
)

// ProductStatus is a moderation state a listing can be set to
type ProductStatus string

const (
	StatusApproved ProductStatus = model.ProductStatusApproved
	StatusPending  ProductStatus = model.ProductStatusPending
	StatusRejected ProductStatus = model.ProductStatusRejected
)

// ParseProductStatus accepts exactly the values the moderation select offers
func ParseProductStatus(s string) (ProductStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !model.IsValidProductStatus(s) {
		return "", fmt.Errorf("invalid status %q: must be one of %s", s, strings.Join(model.ProductStatuses, ", "))
	}
	return ProductStatus(s), nil
}

const adminProductsPath = "/api/admin/marketplace/products"

// ListProducts returns every marketplace listing. Any failure yields an
// empty list and a log line; the caller never sees an error.
func (c *Client) ListProducts(ctx context.Context, token string) []model.Product {
	status, body, err := c.do(ctx, http.MethodGet, adminProductsPath, token, nil)
	if err != nil {
		log.Printf("ERROR: fetching products: %v", err)
		return []model.Product{}
	}
	if !isSuccess(status) {
		log.Printf("ERROR: fetching products: status %d", status)
		return []model.Product{}
	}

	var resp struct {
		Products []model.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("ERROR: decoding products: %v", err)
		return []model.Product{}
	}
	if resp.Products == nil {
		return []model.Product{}
	}
	return resp.Products
}

// SetStatus patches one listing's status and then re-fetches the whole
// list, whether or not the patch succeeded. The returned list is always
// the server's current state.
func (c *Client) SetStatus(ctx context.Context, productID int64, productStatus ProductStatus, token string) []model.Product {
	path := fmt.Sprintf("%s/%d", adminProductsPath, productID)
	status, body, err := c.do(ctx, http.MethodPatch, path, token, map[string]string{"status": string(productStatus)})
	switch {
	case err != nil:
		log.Printf("ERROR: updating product %d: %v", productID, err)
	case !isSuccess(status):
		log.Printf("ERROR: updating product %d: status %d %s", productID, status, backendMessage(body))
	default:
		log.Printf("INFO: product %d set to %s", productID, productStatus)
	}
	return c.ListProducts(ctx, token)
}
