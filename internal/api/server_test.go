package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/weather"
)

const (
	testGeoBody = `{"city":"Utrecht","district":"Oost","latitude":"52.09","longitude":"5.12"}`

	testForecastBody = `{"forecastDays":[{
		"displayDate":{"year":2025,"month":8,"day":30},
		"maxTemperature":{"degrees":24.5},
		"minTemperature":{"degrees":14.0},
		"daytimeForecast":{
			"precipitation":{"probability":{"percent":35}},
			"weatherCondition":{"type":"CLEAR","description":{"text":"Sunny"}}
		}
	}]}`
)

// testServer builds a Server whose weather client talks to local fakes.
func testServer(t *testing.T, geoBody, forecastBody string) *Server {
	t.Helper()

	geoSrv := httptest.NewServer(jsonHandler(geoBody))
	t.Cleanup(geoSrv.Close)
	fcSrv := httptest.NewServer(jsonHandler(forecastBody))
	t.Cleanup(fcSrv.Close)

	upstream := config.UpstreamConfig{
		IPGeo:   config.IPGeoConfig{APIKey: "geo-key", BaseURL: geoSrv.URL},
		Weather: config.WeatherConfig{APIKey: "wx-key", BaseURL: fcSrv.URL, ForecastDays: 5},
		Timeout: 2,
	}

	s, err := New(Deps{
		Config:  config.APIConfig{Host: "127.0.0.1", Port: 5000},
		Logger:  logging.Default(),
		Weather: weather.NewClient(upstream, logging.Default()),
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.buildRouter().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := New(Deps{Logger: logging.Default()}); err == nil {
		t.Error("New must reject a missing weather client")
	}
	if _, err := New(Deps{Weather: &weather.Client{}}); err == nil {
		t.Error("New must reject a missing logger")
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleTime(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)
	s.now = func() time.Time {
		return time.Date(2025, 3, 21, 9, 30, 0, 0, time.Local)
	}

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/time", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)

	if body["gregorian"] != "2025-03-21 09:30:00" {
		t.Errorf("gregorian = %v", body["gregorian"])
	}
	if body["weekday"] != "Friday" {
		t.Errorf("weekday = %v", body["weekday"])
	}

	solar, ok := body["solar"].(map[string]any)
	if !ok {
		t.Fatalf("missing solar section: %v", body)
	}
	if solar["year"] != float64(2025) || solar["month"] != float64(3) || solar["day"] != float64(21) {
		t.Errorf("solar date = %v", solar)
	}
	if solar["solar_term"] != float64(5) {
		t.Errorf("solar_term = %v, want 5", solar["solar_term"])
	}

	lunar, ok := body["lunar"].(map[string]any)
	if !ok {
		t.Fatalf("missing lunar section: %v", body)
	}
	if lunar["zodiac"] != "Snake" {
		t.Errorf("zodiac = %v", lunar["zodiac"])
	}
	if lunar["month"] != float64(2) || lunar["day"] != float64(22) {
		t.Errorf("lunar date = %v", lunar)
	}
}

func TestHandleWeather(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)

	req := httptest.NewRequest(http.MethodGet, "/weather", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := doRequest(s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["location"] != "Utrecht" || body["district"] != "Oost" {
		t.Errorf("location = %v/%v", body["location"], body["district"])
	}
	forecast, ok := body["forecast"].([]any)
	if !ok || len(forecast) != 1 {
		t.Fatalf("forecast = %v", body["forecast"])
	}
	day := forecast[0].(map[string]any)
	if day["weather_type"] != float64(3) {
		t.Errorf("weather_type = %v, want 3 for CLEAR", day["weather_type"])
	}
}

func TestHandleWeather_UpstreamMissingForecastDays(t *testing.T) {
	s := testServer(t, testGeoBody, `{"error":{"code":403}}`)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/weather", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Unable to retrieve weather data" {
		t.Errorf("error = %v", body["error"])
	}
	if _, ok := body["weather_response"]; !ok {
		t.Error("response must carry the raw upstream body")
	}
}

func TestHandleWeather_UpstreamMissingCoordinates(t *testing.T) {
	s := testServer(t, `{"message":"bad key"}`, testForecastBody)

	req := httptest.NewRequest(http.MethodGet, "/weather", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := doRequest(s, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Unable to retrieve location" {
		t.Errorf("error = %v", body["error"])
	}
	if body["ip"] != "203.0.113.7" {
		t.Errorf("ip = %v", body["ip"])
	}
}

func TestHandleWeather_UpstreamDown(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)
	// Point the weather client at a closed port.
	upstream := config.UpstreamConfig{
		IPGeo:   config.IPGeoConfig{BaseURL: "http://127.0.0.1:1"},
		Weather: config.WeatherConfig{BaseURL: "http://127.0.0.1:1", ForecastDays: 5},
		Timeout: 1,
	}
	s.weather = weather.NewClient(upstream, logging.Default())

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/weather", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if _, ok := decodeBody(t, rec)["error"]; !ok {
		t.Error("500 response must carry an error field")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr with port", "192.0.2.1:54321", "", "192.0.2.1"},
		{"forwarded single", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain takes first", "10.0.0.1:80", "203.0.113.7, 10.0.0.2, 10.0.0.3", "203.0.113.7"},
		{"forwarded with spaces", "10.0.0.1:80", "  203.0.113.7  ,10.0.0.2", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/weather", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware_RequestID(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response must carry a generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = doRequest(s, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want client-supplied", got)
	}
}

func TestMiddleware_CORSPreflight(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)

	req := httptest.NewRequest(http.MethodOptions, "/weather", nil)
	req.Header.Set("Origin", "http://clock.local")
	rec := doRequest(s, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://clock.local" {
		t.Errorf("allow-origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestMiddleware_CORSRestrictedOrigin(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)
	s.cfg.CORS.AllowedOrigins = []string{"http://allowed.local"}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec := doRequest(s, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin must not receive CORS headers")
	}
}

func TestServerLifecycle(t *testing.T) {
	s := testServer(t, testGeoBody, testForecastBody)

	if err := s.HealthCheck(context.Background()); err == nil {
		t.Error("health check must fail before Start")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close before Start must be a no-op: %v", err)
	}
}
