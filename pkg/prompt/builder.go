// Package prompt composes the natural-language instructions sent to the
// generative model. Field values are embedded verbatim; the blast radius of
// a malformed value is one rendered card, never a persisted record.
package prompt

import (
	"fmt"
	"strings"
)

// Builder constructs model instruction strings.
// All methods are pure functions with no side effects.
// Zero value is ready to use.
type Builder struct{}

// CropParams defines inputs for a crop recommendation prompt.
type CropParams struct {
	Soil     string
	Season   string
	Location string
	Language string
}

// YieldParams defines inputs for a yield prediction prompt.
type YieldParams struct {
	Crop         string
	Area         string
	Soil         string
	Season       string
	PreviousCrop string
	Irrigation   string
	SeedVariety  string
	Language     string
}

// AdvisoryParams defines inputs for an advisory prompt.
type AdvisoryParams struct {
	Crop     string
	Stage    string
	Problem  string
	Language string
}

// DiseaseAnalysis returns the instruction accompanying a crop image.
func (b Builder) DiseaseAnalysis(language string) string {
	return fmt.Sprintf("Analyze this image of a crop. Identify if there is any disease. "+
		"If healthy, state it. If diseased, provide the name, confidence level (0-100), "+
		"treatment, and preventative measures. Respond in language: %s.",
		LanguageName(language))
}

// CropRecommendation returns the instruction for a ranked crop list.
func (b Builder) CropRecommendation(p CropParams) string {
	return fmt.Sprintf("Suggest 3 suitable crops for: Soil=%s, Season=%s, Location=%s. "+
		"Provide suitability percentage, reason, and duration. Language: %s.",
		p.Soil, p.Season, p.Location, LanguageName(p.Language))
}

// YieldPrediction returns the instruction for a yield estimate.
func (b Builder) YieldPrediction(p YieldParams) string {
	return fmt.Sprintf("Act as an expert agronomist. Predict crop yield based on detailed inputs: "+
		"Crop: %s, Area: %s acres, Soil: %s, Season: %s, Previous Crop: %s, Irrigation: %s, Seed Variety: %s. "+
		"Language: %s. "+
		"Provide output in JSON format including yield range, unit, confidence, influencing factors, and agronomic suggestions.",
		p.Crop, p.Area, p.Soil, p.Season, p.PreviousCrop, p.Irrigation, p.SeedVariety,
		LanguageName(p.Language))
}

// Advisory returns the instruction for irrigation/fertilizer/pesticide advice.
func (b Builder) Advisory(p AdvisoryParams) string {
	problem := p.Problem
	if problem == "" {
		problem = "General Care"
	}
	return fmt.Sprintf("Provide specific agricultural advice for: Crop: %s, Stage: %s, Problem: %s. "+
		"Language: %s. "+
		"Return JSON with specific fields for Irrigation, Fertilizer, and Pesticides.",
		p.Crop, p.Stage, problem, LanguageName(p.Language))
}

// WeatherForecast returns the instruction for a grounded weather lookup.
func (b Builder) WeatherForecast(location, language string) string {
	return fmt.Sprintf("Get current weather and 5-day forecast for %s. "+
		"Provide a short farming advisory. Translate to %s. Return JSON schema.",
		location, LanguageName(language))
}

// AnalyticsInsight returns the instruction for a strategic farm-data review.
// dataJSON is the caller's analytics record set, already serialized.
func (b Builder) AnalyticsInsight(dataJSON, language string) string {
	return fmt.Sprintf("Analyze this agricultural data and provide strategic insights in %s. "+
		"Data: %s. Use search to check market prices in India. Keep it concise.",
		LanguageName(language), dataJSON)
}

// ChatSystem returns the system instruction for the conversational assistant.
func (b Builder) ChatSystem(language string) string {
	return strings.Join([]string{
		"You are Bhumi, a wise and friendly agricultural expert friend.",
		"Your Goal: Help farmers with practical, empathetic advice.",
		"Personality: Warm, human-like, encouraging. Avoid being robotic. Speak like a knowledgeable neighbor.",
		fmt.Sprintf("Language Rule: You MUST strictly respond in %s ONLY.", LanguageName(language)),
		"Capabilities: Use Google Search to provide REAL-TIME weather, prices, and news.",
		"Formatting: Keep paragraphs short. Do NOT use Markdown.",
	}, "\n")
}

// VoiceSystem returns the system instruction for the voice assistant, tuned
// for very short spoken replies.
func (b Builder) VoiceSystem() string {
	return strings.Join([]string{
		"You are Bhumi, a magical farm spirit voice.",
		"Keep answers VERY short (1-2 sentences), conversational, and helpful.",
		"You are talking to a farmer. Be instant and warm.",
	}, "\n")
}
