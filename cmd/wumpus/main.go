// Package main is the entry point for the wumpus hunt.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/PieterJanSterk/second-movement/internal/config"
	"github.com/PieterJanSterk/second-movement/internal/game"
	"github.com/PieterJanSterk/second-movement/internal/observability"
	"github.com/PieterJanSterk/second-movement/internal/random"
	"github.com/PieterJanSterk/second-movement/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
			// Continue without telemetry - game still works
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	src := random.NewCrypto()
	if cfg.Seed != 0 {
		src = random.NewSeeded(cfg.Seed)
		logger.Info("using seeded randomness", zap.Int64("seed", cfg.Seed))
	}

	settings := game.Settings{
		ActiveWumpus: cfg.ActiveWumpus,
		Sound:        !cfg.Quiet,
	}

	g, err := game.New(src, settings, logger)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Construct the headers from the API key; the .env file may hold an
	// unexpanded variable reference that doesn't work as-is
	apiKey := os.Getenv("HONEYCOMB_WUMPUS_API_KEY")
	dataset := os.Getenv("HONEYCOMB_WUMPUS_DATASET")
	if dataset == "" {
		dataset = "wumpus" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
