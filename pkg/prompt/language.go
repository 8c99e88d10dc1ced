package prompt

// languageNames maps supported language codes to the full names embedded in
// model instructions.
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"or": "Odia",
	"bn": "Bengali",
	"zh": "Mandarin Chinese",
	"es": "Spanish",
	"ru": "Russian",
	"ja": "Japanese",
	"pt": "Portuguese",
}

// LanguageName resolves a language code to its human-readable name.
// Unrecognized codes fall back to English.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}

// SupportedLanguages returns the supported code → name table.
func SupportedLanguages() map[string]string {
	out := make(map[string]string, len(languageNames))
	for code, name := range languageNames {
		out[code] = name
	}
	return out
}
