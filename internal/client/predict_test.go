package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictPrice_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/predict-price", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("arrival_quantity"))
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"predicted_price":2400,"risk_level":"low","confidence":0.75,"forecast_range":{"min":1900,"max":2900}}}`))
	}))
	defer srv.Close()
	c, store, _ := newTestClient(srv.URL, nil)
	store.Set(Session{Token: "T1", Role: "farmer"})

	p, err := c.PredictPrice(context.Background(), "wheat", "Indore", 0)
	require.NoError(t, err)
	assert.Equal(t, 2400.0, p.PredictedPrice)
	require.NotNil(t, p.ForecastRange)
	assert.Equal(t, 2900.0, p.ForecastRange.Max)
	assert.Nil(t, p.HistoricalAvg)
}

func TestPredictPrice_FlatBodyAndErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("district") == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Crop and district parameters are required"}`))
			return
		}
		_, _ = w.Write([]byte(`{"predicted_price":1830.5,"risk_level":"medium","confidence":0.8}`))
	}))
	defer srv.Close()
	c, _, _ := newTestClient(srv.URL, nil)

	p, err := c.PredictPrice(context.Background(), "onion", "Nashik", 1500)
	require.NoError(t, err)
	assert.Equal(t, "medium", p.RiskLevel)

	_, err = c.PredictPrice(context.Background(), "onion", "", 1500)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Crop and district parameters are required", apiErr.Message)
}

func TestPriceHistory_PlaceholderOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c, _, _ := newTestClient(srv.URL, nil)

	history := c.PriceHistory(context.Background(), "rice", "Patna", 6)
	require.Len(t, history, 6)
	assert.Equal(t, "Jan", history[0].Month)
	assert.Equal(t, history, c.PriceHistory(context.Background(), "rice", "Patna", 6))

	assert.Len(t, c.PriceHistory(context.Background(), "rice", "Patna", 0), 12)
}

func TestRiskAssessment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"risk_level":"high","factors":["Supply variation: 40%"]}}`))
	}))
	defer srv.Close()
	c, _, _ := newTestClient(srv.URL, nil)

	risk, err := c.RiskAssessment(context.Background(), "onion", "Nashik")
	require.NoError(t, err)
	assert.Equal(t, "high", risk.RiskLevel)
	assert.Len(t, risk.Factors, 1)
}
