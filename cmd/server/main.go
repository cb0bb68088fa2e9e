package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dealscope/backend/config"
	httpDelivery "github.com/dealscope/backend/internal/delivery/http"
	"github.com/dealscope/backend/internal/infrastructure/cache"
	"github.com/dealscope/backend/internal/infrastructure/harvester"
	"github.com/dealscope/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting DealScope Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Harvester: %s", cfg.Harvester.BaseURL)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	harvesterClient := harvester.NewClient(cfg.Harvester.APIKey, cfg.Harvester.BaseURL, cfg.Harvester.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		harvesterClient.SetDebug(true)
		log.Printf("Harvester client debug mode enabled")
	}

	// Initialize usecase layer
	resolver := usecase.NewResolverService(harvesterClient, usecase.ResolverConfig{
		MaxCandidates:       cfg.Matching.MaxCandidates,
		PriceVarianceLimit:  cfg.Matching.PriceVarianceLimit,
		ConfidenceThreshold: cfg.Matching.ConfidenceThreshold,
		ClampNegativePrices: cfg.Matching.ClampNegativePrices,
		EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
	})
	bundles := usecase.NewBundleService(resolver)

	log.Printf("Matching: confidence=%.2f, variance=%.2f, candidates=%d, debug=%v",
		cfg.Matching.ConfidenceThreshold,
		cfg.Matching.PriceVarianceLimit,
		cfg.Matching.MaxCandidates,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver, bundles, memoryCache, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
