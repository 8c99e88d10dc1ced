package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/advisor"
	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// YieldPredictor defines the interface the handler depends on.
type YieldPredictor interface {
	PredictYield(ctx context.Context, q advisor.YieldQuery, language string) (*models.YieldResult, error)
}

// NewYieldHandler returns an http.HandlerFunc for POST /api/v1/yield/predict.
func NewYieldHandler(svc YieldPredictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Crop         string `json:"crop"`
			Area         string `json:"area"`
			Soil         string `json:"soil"`
			Season       string `json:"season"`
			PreviousCrop string `json:"previous_crop"`
			Irrigation   string `json:"irrigation"`
			SeedVariety  string `json:"seed_variety"`
			Language     string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Crop == "" || req.Area == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "crop and area are required", nil)
			return
		}

		result, err := svc.PredictYield(r.Context(), advisor.YieldQuery{
			Crop:         req.Crop,
			Area:         req.Area,
			Soil:         req.Soil,
			Season:       req.Season,
			PreviousCrop: req.PreviousCrop,
			Irrigation:   req.Irrigation,
			SeedVariety:  req.SeedVariety,
		}, langOrDefault(req.Language))
		if err != nil {
			writeAIError(w, err)
			return
		}

		response.JSON(w, result)
	}
}
