package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/pkg/response"
	"kisan_unnati/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the marketplace moderation panel and the dashboard
type AdminHandler struct {
	service   service.ProductService
	dashboard service.DashboardService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.ProductService, d service.DashboardService) *AdminHandler {
	return &AdminHandler{service: s, dashboard: d}
}

func productFilters(c *gin.Context) (model.ProductFilters, error) {
	var filters model.ProductFilters
	if status := c.Query("status"); status != "" {
		if !model.IsValidProductStatus(status) {
			return filters, service.ErrInvalidProductStatus
		}
		filters.Status = &status
	}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	return filters, nil
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	filters, err := productFilters(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), filters)
	if err != nil {
		log.Printf("ERROR: listing marketplace products: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *AdminHandler) UpdateProductStatus(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req model.UpdateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	product, err := h.service.UpdateStatus(c.Request.Context(), productID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProductStatus):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, "Product not found")
		default:
			log.Printf("ERROR: updating status of product %d: %v", productID, err)
			response.Error(c, http.StatusInternalServerError, "Failed to update product status")
		}
		return
	}

	if adminID, err := getAuthUserID(c); err == nil {
		log.Printf("INFO: admin %d set product %d to %s", adminID, productID, product.Status)
	}
	response.OK(c, "Product status updated", product)
}

func (h *AdminHandler) ExportProductsCSV(c *gin.Context) {
	filters, err := productFilters(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	csvBuffer, err := h.service.ExportProductsCSV(c.Request.Context(), filters)
	if err != nil {
		log.Printf("ERROR: exporting products to CSV: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to export products to CSV")
		return
	}

	fileName := fmt.Sprintf("products_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv", csvBuffer.Bytes())
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: loading dashboard stats: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	response.OK(c, "Dashboard stats retrieved", stats)
}

// RegisterAdminRoutes registers the admin-only dashboard and marketplace routes
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	rg.GET("/admin/dashboard", authMW, adminMW, h.Dashboard)

	adminRoutes := rg.Group("/admin/marketplace")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/products", h.ListProducts)
		adminRoutes.GET("/products/export", h.ExportProductsCSV)
		adminRoutes.PATCH("/products/:id", h.UpdateProductStatus)
	}
}
