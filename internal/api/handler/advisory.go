package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/advisor"
	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// Adviser defines the interface the handler depends on.
type Adviser interface {
	Advise(ctx context.Context, q advisor.AdvisoryQuery, language string) (*models.AdvisoryResult, error)
}

// NewAdvisoryHandler returns an http.HandlerFunc for POST /api/v1/advisory.
func NewAdvisoryHandler(svc Adviser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Crop     string `json:"crop"`
			Stage    string `json:"stage"`
			Problem  string `json:"problem"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Crop == "" || req.Stage == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "crop and stage are required", nil)
			return
		}

		result, err := svc.Advise(r.Context(), advisor.AdvisoryQuery{
			Crop:    req.Crop,
			Stage:   req.Stage,
			Problem: req.Problem,
		}, langOrDefault(req.Language))
		if err != nil {
			writeAIError(w, err)
			return
		}

		response.JSON(w, result)
	}
}
