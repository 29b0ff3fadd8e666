// Emberwatch almanacd - calendar and weather HTTP service
//
// almanacd serves the combined Gregorian/lunisolar calendar view consumed by
// the clock firmware, and proxies a condensed multi-day weather forecast
// resolved from the requester's IP address.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arlenmoss/emberwatch/internal/api"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/weather"
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
	log.Info("starting almanacd", "version", version)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, "almanacd", version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	weatherClient := weather.NewClient(cfg.Upstream, log)

	server, err := api.New(api.Deps{
		Config:  cfg.API,
		Logger:  log,
		Weather: weatherClient,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("almanacd stopped")
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
