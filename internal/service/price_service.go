package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kisan_unnati/internal/model"
)

var ErrMissingCropOrDistrict = errors.New("crop and district parameters are required")

// DefaultArrivalQuantity is used when a prediction request omits arrival_quantity
const DefaultArrivalQuantity = 1000

// PricePredictor is the narrow interface to whatever produces crop price
// forecasts. The Python AI service and the built-in mock both implement it.
type PricePredictor interface {
	PredictPrice(ctx context.Context, q model.PriceQuery) (*model.PricePrediction, error)
	PriceHistory(ctx context.Context, crop, district string, months int) ([]model.PriceHistoryPoint, error)
	RiskAssessment(ctx context.Context, crop, district string) (*model.RiskAssessment, error)
}

// RemotePredictor calls the AI service over HTTP
type RemotePredictor struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemotePredictor creates a predictor for the AI service at baseURL
func NewRemotePredictor(baseURL string) *RemotePredictor {
	return &RemotePredictor{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *RemotePredictor) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build AI service request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("AI service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("AI service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode AI service response: %w", err)
	}
	return nil
}

func (p *RemotePredictor) PredictPrice(ctx context.Context, q model.PriceQuery) (*model.PricePrediction, error) {
	params := url.Values{}
	params.Set("crop", q.Crop)
	params.Set("district", q.District)
	params.Set("arrival_quantity", strconv.FormatFloat(q.ArrivalQuantity, 'f', -1, 64))

	var prediction model.PricePrediction
	if err := p.get(ctx, "/api/predict-price", params, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

func (p *RemotePredictor) PriceHistory(ctx context.Context, crop, district string, months int) ([]model.PriceHistoryPoint, error) {
	params := url.Values{}
	params.Set("crop", crop)
	params.Set("district", district)
	params.Set("months", strconv.Itoa(months))

	var history []model.PriceHistoryPoint
	if err := p.get(ctx, "/api/price-history", params, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (p *RemotePredictor) RiskAssessment(ctx context.Context, crop, district string) (*model.RiskAssessment, error) {
	params := url.Values{}
	params.Set("crop", crop)
	params.Set("district", district)

	var risk model.RiskAssessment
	if err := p.get(ctx, "/api/risk-assessment", params, &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}

// basePrices are per-quintal placeholder prices in rupees
var basePrices = map[string]float64{
	"wheat":     2400,
	"rice":      2200,
	"corn":      1800,
	"cotton":    5500,
	"sugarcane": 3200,
	"pulses":    4500,
	"oilseeds":  4200,
	"potato":    1200,
}

const (
	mockNote         = "This is mock data. Real data will be available when AI service is connected."
	defaultBasePrice = 2000
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MockPredictor produces deterministic placeholder forecasts so screens stay
// populated while the AI service is down
type MockPredictor struct{}

func mockBasePrice(crop string) float64 {
	if price, ok := basePrices[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return price
	}
	return defaultBasePrice
}

func mockRisk(arrivalQuantity float64) string {
	switch {
	case arrivalQuantity > 5000:
		return "high"
	case arrivalQuantity > 2000:
		return "medium"
	default:
		return "low"
	}
}

func (MockPredictor) PredictPrice(_ context.Context, q model.PriceQuery) (*model.PricePrediction, error) {
	price := mockBasePrice(q.Crop)
	historical := math.Round(price * 0.95)
	return &model.PricePrediction{
		PredictedPrice: price,
		RiskLevel:      mockRisk(q.ArrivalQuantity),
		Confidence:     0.75,
		HistoricalAvg:  &historical,
		ForecastRange:  &model.ForecastRange{Min: price - 500, Max: price + 500},
		Note:           mockNote,
	}, nil
}

func (MockPredictor) PriceHistory(_ context.Context, crop, _ string, months int) ([]model.PriceHistoryPoint, error) {
	base := mockBasePrice(crop)
	history := make([]model.PriceHistoryPoint, 0, months)
	for i := max(0, months-12); i < months; i++ {
		history = append(history, model.PriceHistoryPoint{
			Month: monthNames[i%12],
			Price: base + float64((i*37)%200-100),
		})
	}
	return history, nil
}

func (MockPredictor) RiskAssessment(_ context.Context, _, _ string) (*model.RiskAssessment, error) {
	return &model.RiskAssessment{
		RiskLevel: "medium",
		Factors: []string{
			"Market volatility: 25%",
			"Supply variation: 18%",
			"Seasonal demand: 12%",
		},
	}, nil
}

// FallbackPredictor asks primary first and answers from fallback when
// primary fails
type FallbackPredictor struct {
	primary  PricePredictor
	fallback PricePredictor
}

// NewFallbackPredictor wraps primary with a fallback
func NewFallbackPredictor(primary, fallback PricePredictor) *FallbackPredictor {
	return &FallbackPredictor{primary: primary, fallback: fallback}
}

func (f *FallbackPredictor) PredictPrice(ctx context.Context, q model.PriceQuery) (*model.PricePrediction, error) {
	prediction, err := f.primary.PredictPrice(ctx, q)
	if err != nil {
		log.Printf("WARN: AI service unavailable, using mock data for crop %s: %v", q.Crop, err)
		return f.fallback.PredictPrice(ctx, q)
	}
	return prediction, nil
}

func (f *FallbackPredictor) PriceHistory(ctx context.Context, crop, district string, months int) ([]model.PriceHistoryPoint, error) {
	history, err := f.primary.PriceHistory(ctx, crop, district, months)
	if err != nil {
		log.Printf("WARN: AI service unavailable, using mock price history for crop %s: %v", crop, err)
		return f.fallback.PriceHistory(ctx, crop, district, months)
	}
	return history, nil
}

func (f *FallbackPredictor) RiskAssessment(ctx context.Context, crop, district string) (*model.RiskAssessment, error) {
	risk, err := f.primary.RiskAssessment(ctx, crop, district)
	if err != nil {
		log.Printf("WARN: AI service unavailable, using mock risk data for crop %s: %v", crop, err)
		return f.fallback.RiskAssessment(ctx, crop, district)
	}
	return risk, nil
}

// PriceService validates prediction requests before handing them to a predictor
type PriceService interface {
	PredictPrice(ctx context.Context, q model.PriceQuery) (*model.PricePrediction, error)
	PriceHistory(ctx context.Context, crop, district string, months int) ([]model.PriceHistoryPoint, error)
	RiskAssessment(ctx context.Context, crop, district string) (*model.RiskAssessment, error)
}

type priceService struct {
	predictor PricePredictor
}

// NewPriceService creates a new PriceService
func NewPriceService(predictor PricePredictor) PriceService {
	return &priceService{predictor: predictor}
}

func (s *priceService) PredictPrice(ctx context.Context, q model.PriceQuery) (*model.PricePrediction, error) {
	if q.Crop == "" || q.District == "" {
		return nil, ErrMissingCropOrDistrict
	}
	if q.ArrivalQuantity <= 0 {
		q.ArrivalQuantity = DefaultArrivalQuantity
	}
	prediction, err := s.predictor.PredictPrice(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to get price prediction: %w", err)
	}
	return prediction, nil
}

func (s *priceService) PriceHistory(ctx context.Context, crop, district string, months int) ([]model.PriceHistoryPoint, error) {
	if crop == "" || district == "" {
		return nil, ErrMissingCropOrDistrict
	}
	if months <= 0 {
		months = 12
	}
	history, err := s.predictor.PriceHistory(ctx, crop, district, months)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}
	return history, nil
}

func (s *priceService) RiskAssessment(ctx context.Context, crop, district string) (*model.RiskAssessment, error) {
	if crop == "" || district == "" {
		return nil, ErrMissingCropOrDistrict
	}
	risk, err := s.predictor.RiskAssessment(ctx, crop, district)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk assessment: %w", err)
	}
	return risk, nil
}
