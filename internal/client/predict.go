package client

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"kisan_unnati/internal/model"
)

// DefaultArrivalQuantity is sent when the caller gives no arrival quantity
const DefaultArrivalQuantity = 1000

var placeholderMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func (c *Client) getData(ctx context.Context, path string, params url.Values, out any, fallbackMsg string) error {
	return c.call(ctx, http.MethodGet, path+"?"+params.Encode(), c.store.Token(), nil, out, fallbackMsg)
}

// PredictPrice asks for the expected mandi price of crop in district
func (c *Client) PredictPrice(ctx context.Context, crop, district string, arrivalQuantity float64) (*model.PricePrediction, error) {
	if arrivalQuantity <= 0 {
		arrivalQuantity = DefaultArrivalQuantity
	}
	params := url.Values{}
	params.Set("crop", crop)
	params.Set("district", district)
	params.Set("arrival_quantity", strconv.FormatFloat(arrivalQuantity, 'f', -1, 64))

	var prediction model.PricePrediction
	if err := c.getData(ctx, "/api/ai/predict-price", params, &prediction, "Failed to fetch price prediction"); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// PriceHistory returns monthly prices. When the request fails a
// placeholder series is returned so charts stay populated.
func (c *Client) PriceHistory(ctx context.Context, crop, district string, months int) []model.PriceHistoryPoint {
	if months <= 0 {
		months = 12
	}
	params := url.Values{}
	params.Set("crop", crop)
	params.Set("district", district)
	params.Set("months", strconv.Itoa(months))

	var history []model.PriceHistoryPoint
	if err := c.getData(ctx, "/api/ai/price-history", params, &history, "Failed to fetch price history"); err != nil {
		log.Printf("WARN: price history unavailable, showing placeholder data: %v", err)
		return placeholderHistory(months)
	}
	return history
}

func placeholderHistory(months int) []model.PriceHistoryPoint {
	history := make([]model.PriceHistoryPoint, 0, 12)
	for i := max(0, months-12); i < months; i++ {
		history = append(history, model.PriceHistoryPoint{
			Month: placeholderMonths[i%12],
			Price: float64(2000 + (i*53)%500),
		})
	}
	return history
}

// RiskAssessment explains how risky selling crop now is
func (c *Client) RiskAssessment(ctx context.Context, crop, district string) (*model.RiskAssessment, error) {
	params := url.Values{}
	params.Set("crop", crop)
	params.Set("district", district)

	var risk model.RiskAssessment
	if err := c.getData(ctx, "/api/ai/risk-assessment", params, &risk, "Failed to fetch risk assessment"); err != nil {
		return nil, err
	}
	return &risk, nil
}
