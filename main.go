package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"jiji-catalog/api"
	"jiji-catalog/config"
	"jiji-catalog/scraper/jiji"
	"jiji-catalog/services"
	"jiji-catalog/storage"
	"jiji-catalog/utils"
)

func main() {
	mode := flag.String("mode", "scrape", "run mode: scrape | import | serve")
	flag.Parse()

	logger := utils.NewLogger()
	defer logger.Sync()

	cfg := config.Load()

	switch *mode {
	case "scrape":
		runScrape(cfg, logger)
	case "import":
		runImport(cfg, logger)
	case "serve":
		runServe(cfg, logger)
	default:
		logger.Error("Unknown mode %q (want scrape, import or serve)", *mode)
		os.Exit(2)
	}
}

func runScrape(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== Seller-page harvest starting ===")
	logger.Info("Config: batch %d | scroll rounds %d | poll %dms | image box %dx%d",
		cfg.BatchSize, cfg.ScrollStableRounds, cfg.ScrollPollMs, cfg.ImageMaxWidth, cfg.ImageMaxHeight)

	scraper := jiji.New(cfg, logger)
	report, err := scraper.Run(context.Background())
	if err != nil {
		logger.Error("Harvest failed: %v", err)
		os.Exit(1)
	}

	services.PrintHarvestReport(report)
	fmt.Printf("  Done. Ad log → %s | CSV → %s | Images → %s/\n\n",
		cfg.AdsJSONPath, cfg.AdsCSVPath, cfg.ImagesDir)
}

func runImport(cfg *config.Config, logger *utils.Logger) {
	importer, err := newImporter(cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure PostgreSQL is running and POSTGRES_* env vars are set")
		os.Exit(1)
	}

	summary := importer.Run(context.Background())

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}

func runServe(cfg *config.Config, logger *utils.Logger) {
	importer, err := newImporter(cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		os.Exit(1)
	}

	server := api.NewServer(importer, cfg.ImagesDir, logger)
	if err := server.Run(":" + cfg.HTTPPort); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}

func newImporter(cfg *config.Config, logger *utils.Logger) (*services.Importer, error) {
	store, err := storage.ConnectPostgres(cfg.DSN(), logger)
	if err != nil {
		return nil, err
	}
	return services.NewImporter(store, cfg.AdsJSONPath, logger), nil
}
