package models

import "strings"

// DiseaseResult is the outcome of one crop-image analysis. Confidence is a
// percentage in [0, 100].
type DiseaseResult struct {
	Disease      string  `json:"disease"`
	Confidence   float64 `json:"confidence"`
	Treatment    string  `json:"treatment"`
	Preventative string  `json:"preventative"`
}

// IsHealthy reports whether the analysis found no disease. The model states
// health in free text, so this is a case-insensitive substring check.
func (d DiseaseResult) IsHealthy() bool {
	return strings.Contains(strings.ToLower(d.Disease), "healthy")
}

// CropRecommendation is one entry in a ranked recommendation list; rank is
// the array position. Suitability is a percentage in [0, 100].
type CropRecommendation struct {
	Name        string  `json:"name"`
	Suitability float64 `json:"suitability"`
	Reason      string  `json:"reason"`
	Duration    string  `json:"duration"`
}

// YieldResult is a single yield prediction. PredictedYield is a free-text
// numeric range (e.g. "2.5 - 3.0") in the given unit.
type YieldResult struct {
	PredictedYield     string   `json:"predicted_yield"`
	Unit               string   `json:"unit"`
	Confidence         float64  `json:"confidence"`
	InfluencingFactors []string `json:"influencing_factors"`
	Suggestions        string   `json:"suggestions"`
}

// AdvisoryResult holds the three fixed advisory fields.
type AdvisoryResult struct {
	Irrigation string `json:"irrigation"`
	Fertilizer string `json:"fertilizer"`
	Pesticides string `json:"pesticides"`
}

// AnalyticsData is the farm record set the analytics feature feeds verbatim
// to the model for a strategic insight.
type AnalyticsData struct {
	YieldHistory []YearYield     `json:"yield_history"`
	MarketPrices []MonthPrice    `json:"market_prices"`
	Expenses     []ExpenseAmount `json:"expenses"`
}

type YearYield struct {
	Year  string  `json:"year"`
	Yield float64 `json:"yield"`
}

type MonthPrice struct {
	Month string  `json:"month"`
	Price float64 `json:"price"`
}

type ExpenseAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}
