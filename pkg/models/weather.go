package models

// Forecast icons form a closed enum. Anything else the model invents is
// normalized to DefaultIcon rather than rejected.
const (
	IconSunny        = "sunny"
	IconRain         = "rain"
	IconCloudy       = "cloudy"
	IconStorm        = "storm"
	IconPartlyCloudy = "partly-cloudy"

	DefaultIcon = IconSunny
)

var validIcons = map[string]bool{
	IconSunny:        true,
	IconRain:         true,
	IconCloudy:       true,
	IconStorm:        true,
	IconPartlyCloudy: true,
}

// NormalizeIcon maps an icon value onto the closed enum, substituting
// DefaultIcon for anything unrecognized.
func NormalizeIcon(icon string) string {
	if validIcons[icon] {
		return icon
	}
	return DefaultIcon
}

// WeatherData is a current-conditions snapshot plus a short daily forecast,
// produced by a search-augmented model call. SourceURLs lists the web pages
// the reply was grounded on, when the API reports them.
type WeatherData struct {
	Temp        float64       `json:"temp"`
	Humidity    float64       `json:"humidity"`
	WindSpeed   float64       `json:"wind_speed"`
	Condition   string        `json:"condition"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Forecast    []ForecastDay `json:"forecast"`
	Advisory    string        `json:"advisory"`
	SourceURLs  []string      `json:"source_urls,omitempty"`
}

// ForecastDay is one entry in the ordered forecast sequence.
type ForecastDay struct {
	Day       string  `json:"day"`
	Temp      float64 `json:"temp"`
	Icon      string  `json:"icon"`
	Condition string  `json:"condition"`
}
