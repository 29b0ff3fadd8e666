// Emberwatch memobot - Telegram reminder bot
//
// memobot collects reminders over a two-question Telegram conversation and
// publishes each finished memo as a single "YYYY/MM/DD:content" line to the
// reminder topic, using a short-lived write-scoped broker connection per
// memo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/memo"
)

// Version information - set at build time via ldflags
var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

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
	log.Info("starting memobot", "version", version)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, "memobot", version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	bot, err := memo.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating reminder bot: %w", err)
	}

	go bot.Start()
	defer bot.Stop()

	log.Info("initialisation complete, waiting for shutdown signal",
		"reminder_topic", cfg.MQTT.Topics.Reminder,
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("memobot stopped")
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
