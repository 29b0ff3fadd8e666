package weather

// defaultIcon is used for any weather condition type the table does not
// know. It renders as the generic cloudy glyph on the display firmware.
const defaultIcon = 17

// conditionIcons maps upstream weather condition types to display glyph
// indices on the clock firmware.
var conditionIcons = map[string]int{
	"CLEAR":         3,
	"MOSTLY_CLEAR":  2,
	"PARTLY_CLOUDY": 15,
	"MOSTLY_CLOUDY": 20,
	"CLOUDY":        17,

	"WINDY":         17,
	"WIND_AND_RAIN": 18,

	"LIGHT_RAIN_SHOWERS":      12,
	"CHANCE_OF_SHOWERS":       12,
	"SCATTERED_SHOWERS":       14,
	"RAIN_SHOWERS":            9,
	"HEAVY_RAIN_SHOWERS":      13,
	"LIGHT_TO_MODERATE_RAIN":  12,
	"MODERATE_TO_HEAVY_RAIN":  13,
	"RAIN":                    14,
	"LIGHT_RAIN":              12,
	"HEAVY_RAIN":              13,
	"RAIN_PERIODICALLY_HEAVY": 13,

	"LIGHT_SNOW_SHOWERS":      6,
	"CHANCE_OF_SNOW_SHOWERS":  6,
	"SCATTERED_SNOW_SHOWERS":  8,
	"SNOW_SHOWERS":            19,
	"HEAVY_SNOW_SHOWERS":      7,
	"LIGHT_TO_MODERATE_SNOW":  6,
	"MODERATE_TO_HEAVY_SNOW":  7,
	"SNOW":                    8,
	"LIGHT_SNOW":              6,
	"HEAVY_SNOW":              7,
	"SNOWSTORM":               19,
	"SNOW_PERIODICALLY_HEAVY": 7,
	"HEAVY_SNOW_STORM":        19,
	"BLOWING_SNOW":            8,

	"RAIN_AND_SNOW": 10,
	"HAIL":          14,
	"HAIL_SHOWERS":  14,

	"THUNDERSTORM":            21,
	"THUNDERSHOWER":           21,
	"LIGHT_THUNDERSTORM_RAIN": 21,
	"SCATTERED_THUNDERSTORMS": 21,
	"HEAVY_THUNDERSTORM":      21,

	"FOG": 16,
}

// IconFor returns the glyph index for a condition type and whether the
// condition was recognised. Unknown conditions get the default glyph.
func IconFor(condition string) (icon int, known bool) {
	if icon, ok := conditionIcons[condition]; ok {
		return icon, true
	}
	return defaultIcon, false
}
