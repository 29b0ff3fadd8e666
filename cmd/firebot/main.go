// Emberwatch firebot - fire monitoring Telegram bridge
//
// firebot holds a persistent read-scoped MQTT subscription on the sensor
// telemetry topic, keeps the latest reading per device in memory, pushes
// alarm notifications to authorized Telegram users, and relays operator
// commands back to the devices over short-lived write-scoped connections.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arlenmoss/emberwatch/internal/bot"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/mqtt"
	"github.com/arlenmoss/emberwatch/internal/monitor"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// relayClientID identifies firebot's short-lived command publishes.
const relayClientID = "emberwatch-firebot-relay"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting firebot", "version", version)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, "firebot", version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Shared status snapshot owner
	state := monitor.NewState()

	// Command relay publishes with the write credential pair
	relay := monitor.NewRelay(cfg.MQTT, relayClientID)
	relay.SetLogger(log)

	// Telegram surface
	tgBot, err := bot.New(cfg, state, relay, log)
	if err != nil {
		return fmt.Errorf("creating telegram bot: %w", err)
	}

	// Alarm dispatch goes to every authorized user through the bot
	dispatcher := monitor.NewDispatcher(tgBot, cfg.Telegram.AuthorizedUsers)
	dispatcher.SetLogger(log)

	ingestor := monitor.NewIngestor(state, dispatcher)
	ingestor.SetLogger(log)

	// Persistent read-scoped subscription on the telemetry topic
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	if err := mqttClient.Subscribe(cfg.MQTT.Topics.Sensor, byte(cfg.MQTT.QoS), ingestor.Handle); err != nil {
		return fmt.Errorf("subscribing to sensor topic: %w", err)
	}
	log.Info("subscribed to sensor telemetry",
		"topic", cfg.MQTT.Topics.Sensor,
		"subscriptions", mqttClient.SubscriptionCount(),
	)

	// Long-poll Telegram in the background; Stop() unblocks it
	go tgBot.Start()
	defer tgBot.Stop()

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("firebot stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses EMBERWATCH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("EMBERWATCH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
