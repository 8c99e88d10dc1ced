package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// DiseaseAnalyzer defines the interface the handler depends on.
type DiseaseAnalyzer interface {
	AnalyzeDisease(ctx context.Context, imageBase64, language string) (*models.DiseaseResult, error)
}

// NewDiseaseHandler returns an http.HandlerFunc for POST /api/v1/disease/analyze.
func NewDiseaseHandler(svc DiseaseAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Image    string `json:"image"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Image == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "image is required", nil)
			return
		}

		result, err := svc.AnalyzeDisease(r.Context(), req.Image, langOrDefault(req.Language))
		if err != nil {
			writeAIError(w, err)
			return
		}

		response.JSON(w, struct {
			models.DiseaseResult
			Healthy bool `json:"healthy"`
		}{*result, result.IsHealthy()})
	}
}
