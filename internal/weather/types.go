package weather

import "fmt"

// Report is the condensed weather payload served to clients.
type Report struct {
	Location string `json:"location"`
	District string `json:"district"`
	Forecast []Day  `json:"forecast"`
}

// Day is one forecast day reduced to what the display renders.
type Day struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Day            int     `json:"day"`
	TemperatureMax float64 `json:"temperature_max"`
	TemperatureMin float64 `json:"temperature_min"`
	Precipitation  int     `json:"precipitation"`
	WeatherType    int     `json:"weather_type"`
	Descriptions   string  `json:"descriptions"`
}

// DiagnosticError reports an upstream response that is structurally unusable.
// Handlers map it to a 400 response carrying the details verbatim so the
// failure can be diagnosed from the client side.
type DiagnosticError struct {
	Message string
	Details map[string]any
}

func (e *DiagnosticError) Error() string {
	return e.Message
}

// forecastResponse mirrors the slice of the upstream forecast body we read.
// The per-day sections are pointers so a day missing one of them can be told
// apart from a zero value and rejected.
type forecastResponse struct {
	ForecastDays []forecastDay `json:"forecastDays"`
}

type forecastDay struct {
	DisplayDate     *displayDate     `json:"displayDate"`
	MaxTemperature  *temperature     `json:"maxTemperature"`
	MinTemperature  *temperature     `json:"minTemperature"`
	DaytimeForecast *daytimeForecast `json:"daytimeForecast"`
}

type displayDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type temperature struct {
	Degrees float64 `json:"degrees"`
}

type daytimeForecast struct {
	Precipitation    *precipitation    `json:"precipitation"`
	WeatherCondition *weatherCondition `json:"weatherCondition"`
}

type precipitation struct {
	Probability *probability `json:"probability"`
}

type probability struct {
	Percent int `json:"percent"`
}

type weatherCondition struct {
	Type        string       `json:"type"`
	Description *description `json:"description"`
}

type description struct {
	Text string `json:"text"`
}

// complete reports whether every section the report reads is present.
func (d forecastDay) complete() bool {
	return d.DisplayDate != nil &&
		d.MaxTemperature != nil &&
		d.MinTemperature != nil &&
		d.DaytimeForecast != nil &&
		d.DaytimeForecast.Precipitation != nil &&
		d.DaytimeForecast.Precipitation.Probability != nil &&
		d.DaytimeForecast.WeatherCondition != nil &&
		d.DaytimeForecast.WeatherCondition.Description != nil
}

// stringField extracts a string value from a loosely-typed upstream map.
func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
