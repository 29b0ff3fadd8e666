package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig writes content to a temp file and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
telegram:
  token: "12345:test-token"
  authorized_users: [11111111, 22222222]
mqtt:
  broker:
    host: "broker.local"
    port: 1883
    client_id: "emberwatch-test"
  read_auth:
    username: "reader"
    password: "read-pass"
  write_auth:
    username: "writer"
    password: "write-pass"
  qos: 1
  topics:
    sensor: "home/fire/data"
    control: "home/fire/control"
    reminder: "home/memo"
api:
  host: "0.0.0.0"
  port: 5000
`
	cfg, err := Load(writeTestConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.Token != "12345:test-token" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "12345:test-token")
	}
	if len(cfg.Telegram.AuthorizedUsers) != 2 || cfg.Telegram.AuthorizedUsers[0] != 11111111 {
		t.Errorf("Telegram.AuthorizedUsers = %v, want [11111111 22222222]", cfg.Telegram.AuthorizedUsers)
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
	if cfg.MQTT.ReadAuth.Username != "reader" {
		t.Errorf("MQTT.ReadAuth.Username = %q, want %q", cfg.MQTT.ReadAuth.Username, "reader")
	}
	if cfg.MQTT.WriteAuth.Username != "writer" {
		t.Errorf("MQTT.WriteAuth.Username = %q, want %q", cfg.MQTT.WriteAuth.Username, "writer")
	}
	if cfg.MQTT.Topics.Sensor != "home/fire/data" {
		t.Errorf("MQTT.Topics.Sensor = %q, want %q", cfg.MQTT.Topics.Sensor, "home/fire/data")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Minimal file; everything else should come from defaults.
	content := `
telegram:
  token: "x"
`
	cfg, err := Load(writeTestConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.QoS != 1 {
		t.Errorf("MQTT.QoS = %d, want 1", cfg.MQTT.QoS)
	}
	if cfg.API.Port != 5000 {
		t.Errorf("API.Port = %d, want 5000", cfg.API.Port)
	}
	if cfg.Upstream.Weather.ForecastDays != 5 {
		t.Errorf("Upstream.Weather.ForecastDays = %d, want 5", cfg.Upstream.Weather.ForecastDays)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Telegram.PollTimeout != 10 {
		t.Errorf("Telegram.PollTimeout = %d, want 10", cfg.Telegram.PollTimeout)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTestConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid qos",
			content: `
mqtt:
  qos: 3
`,
		},
		{
			name: "empty sensor topic",
			content: `
mqtt:
  topics:
    sensor: ""
`,
		},
		{
			name: "invalid api port",
			content: `
api:
  port: 99999
`,
		},
		{
			name: "invalid forecast days",
			content: `
upstream:
  weather:
    forecast_days: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTestConfig(t, tt.content))
			if err == nil {
				t.Error("Load() expected validation error, got nil")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	content := `
telegram:
  token: "file-token"
mqtt:
  broker:
    host: "file-host"
  read_auth:
    username: "file-reader"
  write_auth:
    username: "file-writer"
`
	t.Setenv("EMBERWATCH_TELEGRAM_TOKEN", "env-token")
	t.Setenv("EMBERWATCH_MQTT_HOST", "env-host")
	t.Setenv("EMBERWATCH_MQTT_READ_USERNAME", "env-reader")
	t.Setenv("EMBERWATCH_MQTT_WRITE_PASSWORD", "env-write-pass")
	t.Setenv("EMBERWATCH_WEATHER_API_KEY", "env-weather-key")

	cfg, err := Load(writeTestConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.Token != "env-token" {
		t.Errorf("Telegram.Token = %q, want env override %q", cfg.Telegram.Token, "env-token")
	}
	if cfg.MQTT.Broker.Host != "env-host" {
		t.Errorf("MQTT.Broker.Host = %q, want env override %q", cfg.MQTT.Broker.Host, "env-host")
	}
	if cfg.MQTT.ReadAuth.Username != "env-reader" {
		t.Errorf("MQTT.ReadAuth.Username = %q, want env override %q", cfg.MQTT.ReadAuth.Username, "env-reader")
	}
	if cfg.MQTT.WriteAuth.Password != "env-write-pass" {
		t.Errorf("MQTT.WriteAuth.Password = %q, want env override", cfg.MQTT.WriteAuth.Password)
	}
	if cfg.Upstream.Weather.APIKey != "env-weather-key" {
		t.Errorf("Upstream.Weather.APIKey = %q, want env override", cfg.Upstream.Weather.APIKey)
	}
	// File values not overridden by env stay intact.
	if cfg.MQTT.WriteAuth.Username != "file-writer" {
		t.Errorf("MQTT.WriteAuth.Username = %q, want %q", cfg.MQTT.WriteAuth.Username, "file-writer")
	}
}

func TestGetTimeouts(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.API.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %vs, want 30s", got)
	}
	if got := cfg.API.GetWriteTimeout().Seconds(); got != 30 {
		t.Errorf("GetWriteTimeout() = %vs, want 30s", got)
	}
	if got := cfg.API.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %vs, want 60s", got)
	}
	if got := cfg.Upstream.GetTimeout().Seconds(); got != 10 {
		t.Errorf("GetTimeout() = %vs, want 10s", got)
	}
}
