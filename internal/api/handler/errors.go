// Package handler contains the HTTP handlers for the Bhumi API. Each handler
// depends on a narrow interface so tests can stub the services behind it.
package handler

import (
	"errors"
	"net/http"

	"github.com/bhumilabs/bhumi/internal/advisor"
	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/internal/gemini"
)

// writeAIError maps model-layer failures onto the API error contract.
func writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		response.Error(w, http.StatusServiceUnavailable, "AI_NOT_CONFIGURED",
			"The AI service is not configured; set an API key", nil)
	case errors.Is(err, advisor.ErrInvalidResponse):
		response.Error(w, http.StatusBadGateway, "AI_INVALID_RESPONSE",
			"The AI service returned an unusable response", nil)
	case errors.Is(err, gemini.ErrEmptyResponse):
		response.Error(w, http.StatusBadGateway, "AI_INVALID_RESPONSE",
			"The AI service returned an empty response", nil)
	case errors.Is(err, gemini.ErrTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AI_TIMEOUT",
			"The AI request took too long and was cancelled", nil)
	case errors.Is(err, gemini.ErrUnreachable):
		response.Error(w, http.StatusBadGateway, "AI_UNREACHABLE",
			"The AI service could not be reached", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}

// langOrDefault falls back to English when no language code was sent.
func langOrDefault(code string) string {
	if code == "" {
		return "en"
	}
	return code
}
