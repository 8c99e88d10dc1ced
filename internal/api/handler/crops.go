package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/advisor"
	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// CropRecommender defines the interface the handler depends on.
type CropRecommender interface {
	RecommendCrops(ctx context.Context, q advisor.CropQuery, language string) ([]models.CropRecommendation, error)
}

// NewCropsHandler returns an http.HandlerFunc for POST /api/v1/crops/recommend.
func NewCropsHandler(svc CropRecommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Soil     string `json:"soil"`
			Season   string `json:"season"`
			Location string `json:"location"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Soil == "" || req.Season == "" || req.Location == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "soil, season and location are required", nil)
			return
		}

		recs, err := svc.RecommendCrops(r.Context(), advisor.CropQuery{
			Soil:     req.Soil,
			Season:   req.Season,
			Location: req.Location,
		}, langOrDefault(req.Language))
		if err != nil {
			writeAIError(w, err)
			return
		}

		response.JSON(w, recs)
	}
}
