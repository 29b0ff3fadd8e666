package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for emberwatch.
// All configuration is loaded from YAML and can be overridden by environment variables.
// The same file is shared by all three daemons; each reads only the sections it needs.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	API      APIConfig      `yaml:"api"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TelegramConfig contains bot credentials and the operator allow-list.
type TelegramConfig struct {
	Token string `yaml:"token"`

	// AuthorizedUsers is the static allow-list of Telegram user IDs permitted
	// to invoke privileged commands and to receive alarm notifications.
	// Loaded once at startup; never mutated at runtime.
	AuthorizedUsers []int64 `yaml:"authorized_users"`

	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout int `yaml:"poll_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
//
// Two credential pairs are carried: ReadAuth is scoped to subscribing the
// sensor topic, WriteAuth to publishing the control topic. They are used by
// two separate client connections and never shared.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	ReadAuth  MQTTAuthConfig      `yaml:"read_auth"`
	WriteAuth MQTTAuthConfig      `yaml:"write_auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
	Topics    MQTTTopicsConfig    `yaml:"topics"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains one MQTT credential pair.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// MQTTTopicsConfig names the broker topics each daemon uses.
type MQTTTopicsConfig struct {
	// Sensor carries device telemetry (consumed with ReadAuth).
	Sensor string `yaml:"sensor"`
	// Control carries operator commands to devices (produced with WriteAuth).
	Control string `yaml:"control"`
	// Reminder carries memo strings from the reminder bot.
	Reminder string `yaml:"reminder"`
}

// APIConfig contains HTTP API server settings for almanacd.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// UpstreamConfig contains settings for the external HTTP APIs almanacd proxies.
type UpstreamConfig struct {
	IPGeo   IPGeoConfig   `yaml:"ipgeo"`
	Weather WeatherConfig `yaml:"weather"`

	// Timeout is the per-request timeout for upstream calls, in seconds.
	Timeout int `yaml:"timeout"`
}

// IPGeoConfig contains ipgeolocation.io settings.
type IPGeoConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// WeatherConfig contains Google Weather API settings.
type WeatherConfig struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	ForecastDays int    `yaml:"forecast_days"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: EMBERWATCH_SECTION_KEY
// For example: EMBERWATCH_TELEGRAM_TOKEN, EMBERWATCH_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 10,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "emberwatch",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
			Topics: MQTTTopicsConfig{
				Sensor:   "emberwatch/sensor/data",
				Control:  "emberwatch/sensor/control",
				Reminder: "emberwatch/memo",
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 5000,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Upstream: UpstreamConfig{
			IPGeo: IPGeoConfig{
				BaseURL: "https://api.ipgeolocation.io",
			},
			Weather: WeatherConfig{
				BaseURL:      "https://weather.googleapis.com",
				ForecastDays: 5,
			},
			Timeout: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: EMBERWATCH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Telegram
	if v := os.Getenv("EMBERWATCH_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}

	// MQTT
	if v := os.Getenv("EMBERWATCH_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("EMBERWATCH_MQTT_READ_USERNAME"); v != "" {
		cfg.MQTT.ReadAuth.Username = v
	}
	if v := os.Getenv("EMBERWATCH_MQTT_READ_PASSWORD"); v != "" {
		cfg.MQTT.ReadAuth.Password = v
	}
	if v := os.Getenv("EMBERWATCH_MQTT_WRITE_USERNAME"); v != "" {
		cfg.MQTT.WriteAuth.Username = v
	}
	if v := os.Getenv("EMBERWATCH_MQTT_WRITE_PASSWORD"); v != "" {
		cfg.MQTT.WriteAuth.Password = v
	}

	// API
	if v := os.Getenv("EMBERWATCH_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// Upstream API keys (prefer env over file in production)
	if v := os.Getenv("EMBERWATCH_IPGEO_API_KEY"); v != "" {
		cfg.Upstream.IPGeo.APIKey = v
	}
	if v := os.Getenv("EMBERWATCH_WEATHER_API_KEY"); v != "" {
		cfg.Upstream.Weather.APIKey = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// MQTT validation
	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Topics.Sensor == "" {
		errs = append(errs, "mqtt.topics.sensor is required")
	}
	if c.MQTT.Topics.Control == "" {
		errs = append(errs, "mqtt.topics.control is required")
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Upstream validation
	if c.Upstream.Weather.ForecastDays < 1 || c.Upstream.Weather.ForecastDays > 10 {
		errs = append(errs, "upstream.weather.forecast_days must be between 1 and 10")
	}
	if c.Upstream.Timeout < 1 {
		errs = append(errs, "upstream.timeout must be at least 1 second")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c APIConfig) GetReadTimeout() time.Duration {
	return time.Duration(c.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c APIConfig) GetWriteTimeout() time.Duration {
	return time.Duration(c.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c APIConfig) GetIdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.Idle) * time.Second
}

// GetTimeout returns the per-request upstream timeout as a Duration.
func (c UpstreamConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
