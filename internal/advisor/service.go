// Package advisor is the AI request layer: one operation per feature, each
// composing a prompt, invoking the model once, and parsing its reply into a
// typed result. Results live only in the caller's hands; nothing here is
// cached or persisted.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bhumilabs/bhumi/internal/config"
	"github.com/bhumilabs/bhumi/internal/gemini"
	"github.com/bhumilabs/bhumi/pkg/models"
	"github.com/bhumilabs/bhumi/pkg/prompt"
)

// Fixed strings the voice and analytics features substitute instead of
// surfacing errors.
const (
	VoicePlaceholder   = "Please configure your API Key to chat with Bhumi."
	VoiceApology       = "I am having trouble hearing you clearly."
	InsightUnavailable = "Analysis unavailable."
	InsightFailed      = "Could not generate analysis."
)

// CropQuery holds inputs for a crop recommendation.
type CropQuery struct {
	Soil     string
	Season   string
	Location string
}

// YieldQuery holds inputs for a yield prediction.
type YieldQuery struct {
	Crop         string
	Area         string
	Soil         string
	Season       string
	PreviousCrop string
	Irrigation   string
	SeedVariety  string
}

// AdvisoryQuery holds inputs for an advisory request.
type AdvisoryQuery struct {
	Crop    string
	Stage   string
	Problem string
}

// Service implements the per-feature model operations.
type Service struct {
	client  gemini.Client
	cfg     config.GeminiConfig
	prompts prompt.Builder
}

// NewService creates a new advisor Service.
func NewService(client gemini.Client, cfg config.GeminiConfig) *Service {
	return &Service{client: client, cfg: cfg}
}

// Configured reports whether the underlying model client has a credential.
func (s *Service) Configured() bool {
	return s.client.Configured()
}

// AnalyzeDisease submits a base64 crop image for disease identification.
func (s *Service) AnalyzeDisease(ctx context.Context, imageBase64, language string) (*models.DiseaseResult, error) {
	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model: s.cfg.VisionModel,
		Contents: []gemini.Content{gemini.UserContent(
			gemini.Image("image/jpeg", imageBase64),
			gemini.Text(s.prompts.DiseaseAnalysis(language)),
		)},
		ResponseSchema: diseaseSchema,
	})
	if err != nil {
		return nil, err
	}

	var result models.DiseaseResult
	if err := json.Unmarshal([]byte(res.Text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	result.Confidence = clampPercent(result.Confidence)
	return &result, nil
}

// RecommendCrops returns a ranked crop list for the given conditions.
// An empty or malformed reply yields an empty list, not an error.
func (s *Service) RecommendCrops(ctx context.Context, q CropQuery, language string) ([]models.CropRecommendation, error) {
	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model: s.cfg.ReasoningModel,
		Contents: []gemini.Content{gemini.UserContent(gemini.Text(
			s.prompts.CropRecommendation(prompt.CropParams{
				Soil:     q.Soil,
				Season:   q.Season,
				Location: q.Location,
				Language: language,
			}),
		))},
		ResponseSchema: cropListSchema,
	})
	if errors.Is(err, gemini.ErrEmptyResponse) {
		return []models.CropRecommendation{}, nil
	}
	if err != nil {
		return nil, err
	}

	var recs []models.CropRecommendation
	if err := json.Unmarshal([]byte(res.Text), &recs); err != nil {
		slog.Warn("crop recommendation reply did not parse", "error", err)
		return []models.CropRecommendation{}, nil
	}
	for i := range recs {
		recs[i].Suitability = clampPercent(recs[i].Suitability)
	}
	if recs == nil {
		recs = []models.CropRecommendation{}
	}
	return recs, nil
}

// PredictYield returns a single yield estimate for the given inputs.
func (s *Service) PredictYield(ctx context.Context, q YieldQuery, language string) (*models.YieldResult, error) {
	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model: s.cfg.ReasoningModel,
		Contents: []gemini.Content{gemini.UserContent(gemini.Text(
			s.prompts.YieldPrediction(prompt.YieldParams{
				Crop:         q.Crop,
				Area:         q.Area,
				Soil:         q.Soil,
				Season:       q.Season,
				PreviousCrop: q.PreviousCrop,
				Irrigation:   q.Irrigation,
				SeedVariety:  q.SeedVariety,
				Language:     language,
			}),
		))},
		ResponseSchema: yieldSchema,
	})
	if err != nil {
		return nil, err
	}

	var result models.YieldResult
	if err := json.Unmarshal([]byte(res.Text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	result.Confidence = clampPercent(result.Confidence)
	return &result, nil
}

// Advise returns irrigation/fertilizer/pesticide guidance. Past the
// credential check this operation never fails: any problem yields the fixed
// "N/A" record so the card still renders.
func (s *Service) Advise(ctx context.Context, q AdvisoryQuery, language string) (*models.AdvisoryResult, error) {
	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model: s.cfg.ReasoningModel,
		Contents: []gemini.Content{gemini.UserContent(gemini.Text(
			s.prompts.Advisory(prompt.AdvisoryParams{
				Crop:     q.Crop,
				Stage:    q.Stage,
				Problem:  q.Problem,
				Language: language,
			}),
		))},
		ResponseSchema: advisorySchema,
	})
	if err != nil {
		if errors.Is(err, gemini.ErrMissingAPIKey) {
			return nil, err
		}
		slog.Warn("advisory generation failed", "error", err)
		return fallbackAdvisory(), nil
	}

	var result models.AdvisoryResult
	if err := json.Unmarshal([]byte(res.Text), &result); err != nil {
		slog.Warn("advisory reply did not parse", "error", err)
		return fallbackAdvisory(), nil
	}
	return &result, nil
}

// Forecast fetches current weather and a short forecast via search grounding.
// Unrecognized forecast icons are normalized to the default, never rejected.
func (s *Service) Forecast(ctx context.Context, location, language string) (*models.WeatherData, error) {
	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model: s.cfg.ReasoningModel,
		Contents: []gemini.Content{gemini.UserContent(gemini.Text(
			s.prompts.WeatherForecast(location, language),
		))},
		ResponseSchema: weatherSchema,
		GoogleSearch:   true,
	})
	if err != nil {
		return nil, err
	}

	var data models.WeatherData
	if err := json.Unmarshal([]byte(res.Text), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	for i := range data.Forecast {
		data.Forecast[i].Icon = models.NormalizeIcon(data.Forecast[i].Icon)
	}
	data.SourceURLs = res.SourceURLs
	return &data, nil
}

// Chat sends one conversational turn with prior history and returns the
// reply as plain text.
func (s *Service) Chat(ctx context.Context, history []models.ChatMessage, message, language string) (string, error) {
	contents := make([]gemini.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, gemini.Content{Role: m.Role, Parts: []gemini.Part{gemini.Text(m.Text)}})
	}
	contents = append(contents, gemini.UserContent(gemini.Text(message)))

	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model:        s.cfg.ReasoningModel,
		System:       s.prompts.ChatSystem(language),
		Contents:     contents,
		GoogleSearch: true,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// VoiceChat answers a single spoken query on the fast model. It never
// returns an error: a missing credential yields the configuration
// placeholder and any other failure yields the fixed apology.
func (s *Service) VoiceChat(ctx context.Context, message string) string {
	if !s.client.Configured() {
		return VoicePlaceholder
	}

	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model:    s.cfg.FastModel,
		System:   s.prompts.VoiceSystem(),
		Contents: []gemini.Content{gemini.UserContent(gemini.Text(message))},
	})
	if err != nil {
		slog.Debug("voice chat failed", "error", err)
		return VoiceApology
	}
	return res.Text
}

// AnalyticsInsight reviews the caller's farm records and returns a free-text
// strategic summary. Only a missing credential is surfaced as an error;
// other failures substitute fixed fallback text.
func (s *Service) AnalyticsInsight(ctx context.Context, data models.AnalyticsData, language string) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshaling analytics data: %w", err)
	}

	res, err := s.client.Generate(ctx, gemini.GenerateRequest{
		Model: s.cfg.ReasoningModel,
		Contents: []gemini.Content{gemini.UserContent(gemini.Text(
			s.prompts.AnalyticsInsight(string(payload), language),
		))},
		GoogleSearch: true,
	})
	if errors.Is(err, gemini.ErrMissingAPIKey) {
		return "", err
	}
	if errors.Is(err, gemini.ErrEmptyResponse) {
		return InsightUnavailable, nil
	}
	if err != nil {
		slog.Warn("analytics insight failed", "error", err)
		return InsightFailed, nil
	}
	return res.Text, nil
}

func fallbackAdvisory() *models.AdvisoryResult {
	return &models.AdvisoryResult{Irrigation: "N/A", Fertilizer: "N/A", Pesticides: "N/A"}
}

// clampPercent forces a model-reported percentage into [0, 100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
