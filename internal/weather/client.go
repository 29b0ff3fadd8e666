package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
)

// Client resolves a requester's IP to coordinates and fetches the multi-day
// forecast for them.
//
// Two upstream services are involved: an IP geolocation API and a weather
// forecast API. Both base URLs come from configuration so tests can point
// them at local servers.
type Client struct {
	geo      *resty.Client
	forecast *resty.Client
	cfg      config.UpstreamConfig
	logger   *logging.Logger
}

// NewClient builds the upstream clients with the configured timeout.
func NewClient(cfg config.UpstreamConfig, logger *logging.Logger) *Client {
	timeout := cfg.GetTimeout()

	return &Client{
		geo:      resty.New().SetBaseURL(cfg.IPGeo.BaseURL).SetTimeout(timeout),
		forecast: resty.New().SetBaseURL(cfg.Weather.BaseURL).SetTimeout(timeout),
		cfg:      cfg,
		logger:   logger,
	}
}

// Lookup produces the forecast report for the given client IP.
//
// A structurally unusable upstream response (missing coordinates, missing
// forecast days) yields a *DiagnosticError; transport failures yield plain
// errors.
func (c *Client) Lookup(ctx context.Context, clientIP string) (*Report, error) {
	geo, err := c.locate(ctx, clientIP)
	if err != nil {
		return nil, err
	}

	lat := stringField(geo, "latitude")
	lon := stringField(geo, "longitude")
	c.logger.Info("resolved client location", "ip", clientIP, "latitude", lat, "longitude", lon)

	days, err := c.fetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Location: stringField(geo, "city"),
		District: stringField(geo, "district"),
		Forecast: make([]Day, 0, len(days)),
	}
	for _, d := range days {
		condition := d.DaytimeForecast.WeatherCondition.Type
		icon, known := IconFor(condition)
		if !known {
			c.logger.Warn("unknown weather condition, using default glyph",
				"condition", condition,
			)
		}
		report.Forecast = append(report.Forecast, Day{
			Year:           d.DisplayDate.Year,
			Month:          d.DisplayDate.Month,
			Day:            d.DisplayDate.Day,
			TemperatureMax: d.MaxTemperature.Degrees,
			TemperatureMin: d.MinTemperature.Degrees,
			Precipitation:  d.DaytimeForecast.Precipitation.Probability.Percent,
			WeatherType:    icon,
			Descriptions:   d.DaytimeForecast.WeatherCondition.Description.Text,
		})
	}
	return report, nil
}

// locate queries the IP geolocation service and requires coordinates in the
// response.
func (c *Client) locate(ctx context.Context, clientIP string) (map[string]any, error) {
	resp, err := c.geo.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": c.cfg.IPGeo.APIKey,
			"ip":     clientIP,
		}).
		Get("/ipgeo")
	if err != nil {
		return nil, fmt.Errorf("querying geolocation service: %w", err)
	}
	c.logger.Info("geolocation response received", "status", resp.StatusCode())

	var geo map[string]any
	if err := json.Unmarshal(resp.Body(), &geo); err != nil {
		return nil, fmt.Errorf("decoding geolocation response: %w", err)
	}

	if _, ok := geo["latitude"]; !ok {
		return nil, missingCoordinates(clientIP, geo)
	}
	if _, ok := geo["longitude"]; !ok {
		return nil, missingCoordinates(clientIP, geo)
	}
	return geo, nil
}

// fetchForecast queries the weather service and requires forecast days in
// the response.
func (c *Client) fetchForecast(ctx context.Context, lat, lon string) ([]forecastDay, error) {
	resp, err := c.forecast.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":                c.cfg.Weather.APIKey,
			"location.latitude":  lat,
			"location.longitude": lon,
			"days":               strconv.Itoa(c.cfg.Weather.ForecastDays),
		}).
		Get("/v1/forecast/days:lookup")
	if err != nil {
		return nil, fmt.Errorf("querying weather service: %w", err)
	}
	c.logger.Info("forecast response received", "status", resp.StatusCode())

	var raw map[string]any
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}
	if _, ok := raw["forecastDays"]; !ok {
		return nil, &DiagnosticError{
			Message: "Unable to retrieve weather data",
			Details: map[string]any{"weather_response": raw},
		}
	}

	var parsed forecastResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decoding forecast days: %w", err)
	}
	for _, d := range parsed.ForecastDays {
		if !d.complete() {
			return nil, &DiagnosticError{
				Message: "Unable to retrieve weather data",
				Details: map[string]any{"weather_response": raw},
			}
		}
	}
	return parsed.ForecastDays, nil
}

func missingCoordinates(clientIP string, geo map[string]any) error {
	return &DiagnosticError{
		Message: "Unable to retrieve location",
		Details: map[string]any{
			"ip":       clientIP,
			"geo_data": geo,
		},
	}
}
