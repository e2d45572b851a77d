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

// AIHandler exposes crop price forecasts
type AIHandler struct {
	service service.PriceService
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(s service.PriceService) *AIHandler {
	return &AIHandler{service: s}
}

func (h *AIHandler) respondError(c *gin.Context, err error, what string) {
	if errors.Is(err, service.ErrMissingCropOrDistrict) {
		response.Error(c, http.StatusBadRequest, "Crop and district parameters are required")
		return
	}
	log.Printf("ERROR: %s: %v", what, err)
	response.Error(c, http.StatusInternalServerError, "Failed to get "+what)
}

func (h *AIHandler) PredictPrice(c *gin.Context) {
	q := model.PriceQuery{
		Crop:     c.Query("crop"),
		District: c.Query("district"),
	}
	if qty := c.Query("arrival_quantity"); qty != "" {
		parsed, err := strconv.ParseFloat(qty, 64)
		if err != nil || parsed < 0 {
			response.Error(c, http.StatusBadRequest, "Invalid arrival_quantity")
			return
		}
		q.ArrivalQuantity = parsed
	}

	prediction, err := h.service.PredictPrice(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err, "price prediction")
		return
	}
	response.OK(c, "Price prediction generated", prediction)
}

func (h *AIHandler) PriceHistory(c *gin.Context) {
	months := 0
	if m := c.Query("months"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid months")
			return
		}
		months = parsed
	}

	history, err := h.service.PriceHistory(c.Request.Context(), c.Query("crop"), c.Query("district"), months)
	if err != nil {
		h.respondError(c, err, "price history")
		return
	}
	response.OK(c, "Price history retrieved", history)
}

func (h *AIHandler) RiskAssessment(c *gin.Context) {
	risk, err := h.service.RiskAssessment(c.Request.Context(), c.Query("crop"), c.Query("district"))
	if err != nil {
		h.respondError(c, err, "risk assessment")
		return
	}
	response.OK(c, "Risk assessment generated", risk)
}

// RegisterAIRoutes registers the price forecast routes; any logged-in role may use them
func (h *AIHandler) RegisterAIRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	aiRoutes := rg.Group("/ai")
	aiRoutes.Use(authMW)
	{
		aiRoutes.GET("/predict-price", h.PredictPrice)
		aiRoutes.GET("/price-history", h.PriceHistory)
		aiRoutes.GET("/risk-assessment", h.RiskAssessment)
	}
}
