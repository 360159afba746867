package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/janscope/backend/config"
	httpDelivery "github.com/janscope/backend/internal/delivery/http"
	"github.com/janscope/backend/internal/infrastructure/rakuten"
	"github.com/janscope/backend/internal/infrastructure/scrape"
	"github.com/janscope/backend/internal/observe"
	"github.com/janscope/backend/internal/usecase"
)

func main() {
	// Load a local .env if present, then the full configuration.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if cfg.Server.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Infof("Starting janscope backend")
	logger.Infof("Environment: %s", cfg.Server.Environment)
	logger.Infof("Search API: %s", cfg.Rakuten.BaseURL)
	logger.Infof("Enrichment workers: %d", cfg.Scrape.Workers)

	sink := observe.NewLogrusSink(logger)

	// Infrastructure
	client := rakuten.NewClient(cfg.Rakuten.ApplicationID, cfg.Rakuten.BaseURL)
	fetcher := scrape.NewFetcher(cfg.Scrape.Timeout, cfg.Scrape.UserAgent, sink)

	// Pipeline
	extractor := usecase.NewIdentifierExtractor(fetcher, sink)
	resolver := usecase.NewProductResolver(client, extractor, fetcher, sink)
	collector := usecase.NewCompetitorCollector(client, extractor, fetcher, sink, cfg.Scrape.Workers)

	// Delivery
	handler := httpDelivery.NewHandler(resolver, collector)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Infof("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
