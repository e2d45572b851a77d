package model

// ForecastRange bounds a predicted price
type ForecastRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceQuery identifies what a price prediction is asked for
type PriceQuery struct {
	Crop            string
	District        string
	ArrivalQuantity float64
}

// PricePrediction is the AI service answer for one crop and district
type PricePrediction struct {
	PredictedPrice float64        `json:"predicted_price"`
	RiskLevel      string         `json:"risk_level"`
	Confidence     float64        `json:"confidence"`
	HistoricalAvg  *float64       `json:"historical_avg,omitempty"`
	ForecastRange  *ForecastRange `json:"forecast_range,omitempty"`
	Note           string         `json:"note,omitempty"`
}

// PriceHistoryPoint is one month of mandi price history
type PriceHistoryPoint struct {
	Month string  `json:"month"`
	Price float64 `json:"price"`
	Date  string  `json:"date,omitempty"`
}

// RiskAssessment explains the risk level of selling a crop now
type RiskAssessment struct {
	RiskLevel string   `json:"risk_level"`
	Factors   []string `json:"factors"`
}
