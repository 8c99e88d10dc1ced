package handler

import (
	"context"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// Forecaster defines the interface the handler depends on.
type Forecaster interface {
	Forecast(ctx context.Context, location, language string) (*models.WeatherData, error)
}

// NewWeatherHandler returns an http.HandlerFunc for GET /api/v1/weather.
func NewWeatherHandler(svc Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := r.URL.Query().Get("location")
		if location == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "location query parameter is required", nil)
			return
		}
		language := langOrDefault(r.URL.Query().Get("language"))

		data, err := svc.Forecast(r.Context(), location, language)
		if err != nil {
			writeAIError(w, err)
			return
		}

		response.JSON(w, data)
	}
}
