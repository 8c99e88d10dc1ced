package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// InsightGenerator defines the interface the handler depends on.
type InsightGenerator interface {
	AnalyticsInsight(ctx context.Context, data models.AnalyticsData, language string) (string, error)
}

// NewAnalyticsHandler returns an http.HandlerFunc for POST /api/v1/analytics/insight.
func NewAnalyticsHandler(svc InsightGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			YieldHistory []models.YearYield     `json:"yield_history"`
			MarketPrices []models.MonthPrice    `json:"market_prices"`
			Expenses     []models.ExpenseAmount `json:"expenses"`
			Language     string                 `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		insight, err := svc.AnalyticsInsight(r.Context(), models.AnalyticsData{
			YieldHistory: req.YieldHistory,
			MarketPrices: req.MarketPrices,
			Expenses:     req.Expenses,
		}, langOrDefault(req.Language))
		if err != nil {
			writeAIError(w, err)
			return
		}

		response.JSON(w, map[string]string{"insight": insight})
	}
}
