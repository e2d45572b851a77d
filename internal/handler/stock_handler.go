package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/pkg/response"
	"kisan_unnati/internal/service"

	"github.com/gin-gonic/gin"
)

// StockHandler serves the shopkeeper dashboard's inventory and the public
// stock search. Messages are Hindi like the rest of the shopkeeper surface.
type StockHandler struct {
	service service.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) ListStock(c *gin.Context) {
	shopID, err := getAuthUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.service.List(c.Request.Context(), shopID)
	if err != nil {
		log.Printf("ERROR: listing stock of shop %d: %v", shopID, err)
		response.Error(c, http.StatusInternalServerError, "स्टॉक लोड नहीं हो सका")
		return
	}
	response.OK(c, "Stock retrieved", items)
}

func (h *StockHandler) AddStock(c *gin.Context) {
	shopID, err := getAuthUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req model.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "कृपया सभी जरूरी जानकारी भरें")
		return
	}

	item, err := h.service.Add(c.Request.Context(), shopID, &req)
	if err != nil {
		log.Printf("ERROR: adding stock for shop %d: %v", shopID, err)
		response.Error(c, http.StatusInternalServerError, "सामान जोड़ने में त्रुटि हुई")
		return
	}
	response.Created(c, "सामान सफलतापूर्वक जोड़ा गया", item)
}

func (h *StockHandler) UpdateStock(c *gin.Context) {
	shopID, err := getAuthUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid stock ID")
		return
	}

	var req model.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "कृपया सभी जरूरी जानकारी भरें")
		return
	}

	item, err := h.service.Update(c.Request.Context(), shopID, itemID, &req)
	if err != nil {
		if errors.Is(err, service.ErrStockNotFound) {
			response.Error(c, http.StatusNotFound, "सामान नहीं मिला")
			return
		}
		log.Printf("ERROR: updating stock %d of shop %d: %v", itemID, shopID, err)
		response.Error(c, http.StatusInternalServerError, "अपडेट में त्रुटि हुई")
		return
	}
	response.OK(c, "सामान सफलतापूर्वक अपडेट हो गया", item)
}

func (h *StockHandler) DeleteStock(c *gin.Context) {
	shopID, err := getAuthUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid stock ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), shopID, itemID); err != nil {
		if errors.Is(err, service.ErrStockNotFound) {
			response.Error(c, http.StatusNotFound, "सामान नहीं मिला")
			return
		}
		log.Printf("ERROR: deleting stock %d of shop %d: %v", itemID, shopID, err)
		response.Error(c, http.StatusInternalServerError, "डिलीट में त्रुटि हुई")
		return
	}
	response.OK(c, "सामान सफलतापूर्वक डिलीट हो गया", nil)
}

func (h *StockHandler) SearchStock(c *gin.Context) {
	search := model.StockSearch{Query: c.Query("query"), Category: c.Query("category")}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		search.Limit = limit
	}

	results, err := h.service.Search(c.Request.Context(), search)
	if err != nil {
		log.Printf("ERROR: searching stock: %v", err)
		response.Error(c, http.StatusInternalServerError, "खोज में त्रुटि हुई")
		return
	}
	response.OK(c, "Stock search results", results)
}

// RegisterStockRoutes registers /stock. Search is public; the inventory
// routes act on the calling shopkeeper's shop.
func (h *StockHandler) RegisterStockRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, shopkeeperMW gin.HandlerFunc) {
	rg.GET("/stock/search", h.SearchStock)

	stockRoutes := rg.Group("/stock")
	stockRoutes.Use(authMW)
	stockRoutes.Use(shopkeeperMW)
	{
		stockRoutes.GET("", h.ListStock)
		stockRoutes.POST("", h.AddStock)
		stockRoutes.PUT("/:id", h.UpdateStock)
		stockRoutes.DELETE("/:id", h.DeleteStock)
	}
}
