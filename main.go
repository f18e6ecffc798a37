package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"respcheck/adapters/questionnaire"
	"respcheck/adapters/spss"
	"respcheck/adapters/tabular"
	"respcheck/app"
	"respcheck/internal"
	"respcheck/internal/config"
	"respcheck/internal/detect"
	"respcheck/ui"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.Paths.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	logger := internal.NewDefaultLogger()

	detectorCfg := detect.DefaultConfig()
	if cfg.Analysis.MinStraightBatteries > 0 {
		detectorCfg.MinStraightBatteries = cfg.Analysis.MinStraightBatteries
	}
	detectorCfg.LongBatteryTierPolicy = cfg.Analysis.LongBatteryTierPolicy

	service := app.NewAnalysisService(
		tabular.NewReader(logger),
		questionnaire.NewParser(logger),
		detect.NewEngine(detectorCfg, logger),
		spss.NewGenerator(),
		logger,
	)

	server := ui.NewApp(service, cfg, logger)
	log.Printf("Starting respcheck server on port %s", cfg.Server.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
