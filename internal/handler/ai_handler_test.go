package handler

import (
	"net/http"
	"testing"

	"kisan_unnati/internal/middleware"
	"kisan_unnati/internal/model"
	"kisan_unnati/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIRouter() *gin.Engine {
	r := gin.New()
	svc := service.NewPriceService(service.MockPredictor{})
	NewAIHandler(svc).RegisterAIRoutes(r.Group("/api"), middleware.JWTAuthMiddleware(testJWT))
	return r
}

func TestPredictPrice(t *testing.T) {
	r := newAIRouter()
	token, _ := testJWT.GenerateToken(1, model.RoleFarmer)

	w := doJSON(r, http.MethodGet, "/api/ai/predict-price?crop=wheat&district=Indore&arrival_quantity=3000", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, 2400.0, data["predicted_price"])
	assert.Equal(t, "medium", data["risk_level"])
}

func TestPredictPrice_BadInput(t *testing.T) {
	r := newAIRouter()
	token, _ := testJWT.GenerateToken(1, model.RoleShopkeeper)

	w := doJSON(r, http.MethodGet, "/api/ai/predict-price?crop=wheat", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/ai/predict-price?crop=wheat&district=Indore&arrival_quantity=lots", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/ai/predict-price?crop=wheat&district=Indore", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPriceHistoryAndRisk(t *testing.T) {
	r := newAIRouter()
	token, _ := testJWT.GenerateToken(1, model.RoleFarmer)

	w := doJSON(r, http.MethodGet, "/api/ai/price-history?crop=rice&district=Patna&months=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 3)

	w = doJSON(r, http.MethodGet, "/api/ai/risk-assessment?crop=rice&district=Patna", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "medium", decode(t, w)["data"].(map[string]any)["risk_level"])
}
