package main

import (
	"fmt"
	"log"
	"os"

	"sales-forecast/internal/api"
	"sales-forecast/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Log working directory and important paths for debugging
	if wd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", wd)
	}
	log.Printf("Forecast defaults: horizon=%d (%d..%d) top=%d model=%s interval=%.2f",
		cfg.Forecast.DefaultHorizon, cfg.Forecast.MinHorizon, cfg.Forecast.MaxHorizon,
		cfg.Forecast.TopN, cfg.Forecast.Model, cfg.Forecast.IntervalWidth)

	router, err := api.NewRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
