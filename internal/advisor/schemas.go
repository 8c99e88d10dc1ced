package advisor

// Declared output shapes for structured features. The REST API expects
// uppercase type names.

var diseaseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"disease":      map[string]any{"type": "STRING"},
		"confidence":   map[string]any{"type": "NUMBER"},
		"treatment":    map[string]any{"type": "STRING"},
		"preventative": map[string]any{"type": "STRING"},
	},
	"required": []string{"disease", "confidence", "treatment", "preventative"},
}

var cropListSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name":        map[string]any{"type": "STRING"},
			"suitability": map[string]any{"type": "NUMBER"},
			"reason":      map[string]any{"type": "STRING"},
			"duration":    map[string]any{"type": "STRING"},
		},
		"required": []string{"name", "suitability", "reason", "duration"},
	},
}

var yieldSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"predicted_yield":     map[string]any{"type": "STRING", "description": "e.g. 2.5 - 3.0"},
		"unit":                map[string]any{"type": "STRING", "description": "e.g. Tonnes"},
		"confidence":          map[string]any{"type": "NUMBER"},
		"influencing_factors": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
		"suggestions":         map[string]any{"type": "STRING"},
	},
	"required": []string{"predicted_yield", "unit", "confidence", "influencing_factors", "suggestions"},
}

var advisorySchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"irrigation": map[string]any{"type": "STRING"},
		"fertilizer": map[string]any{"type": "STRING"},
		"pesticides": map[string]any{"type": "STRING"},
	},
	"required": []string{"irrigation", "fertilizer", "pesticides"},
}

var weatherSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"temp":        map[string]any{"type": "NUMBER"},
		"humidity":    map[string]any{"type": "NUMBER"},
		"wind_speed":  map[string]any{"type": "NUMBER"},
		"condition":   map[string]any{"type": "STRING"},
		"location":    map[string]any{"type": "STRING"},
		"description": map[string]any{"type": "STRING"},
		"forecast": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"day":       map[string]any{"type": "STRING"},
					"temp":      map[string]any{"type": "NUMBER"},
					"icon":      map[string]any{"type": "STRING", "enum": []string{"sunny", "rain", "cloudy", "storm", "partly-cloudy"}},
					"condition": map[string]any{"type": "STRING"},
				},
			},
		},
		"advisory": map[string]any{"type": "STRING"},
	},
	"required": []string{"temp", "humidity", "wind_speed", "condition", "location", "description", "forecast", "advisory"},
}
