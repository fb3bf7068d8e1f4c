package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cleanbite/backend/config"
	"github.com/cleanbite/backend/internal/delivery/http"
	"github.com/cleanbite/backend/internal/domain"
	"github.com/cleanbite/backend/internal/infrastructure/cache"
	"github.com/cleanbite/backend/internal/infrastructure/llm"
	"github.com/cleanbite/backend/internal/infrastructure/ocr"
	"github.com/cleanbite/backend/internal/logger"
	"github.com/cleanbite/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Setup(logger.LogConfig{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	log := logger.WithComponent("server")

	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("Starting CleanBite backend v1.0.0")

	ctx := context.Background()

	// OCR collaborator: optional, image requests are rejected without it
	var extractor domain.TextExtractor
	if cfg.OCR.Enabled {
		visionExtractor, err := ocr.NewVisionExtractor(ctx, cfg.OCR.CredentialsFile, cfg.OCR.MaxImageBytes)
		if err != nil {
			log.Warn().Err(err).Msg("OCR unavailable; only ingredientsText requests will be served")
		} else {
			defer visionExtractor.Close()
			extractor = visionExtractor
		}
	}

	// Reasoning collaborator: optional, the rule engine covers its absence
	var reasoner domain.ReasoningClient
	if cfg.OpenAI.APIKey != "" {
		reasoner = llm.NewClient(llm.Config{
			APIKey:      cfg.OpenAI.APIKey,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			Timeout:     cfg.OpenAI.Timeout,
		})
		log.Info().Str("model", cfg.OpenAI.Model).Msg("Primary classifier configured")
	} else {
		log.Warn().Msg("No OpenAI API key configured; all verdicts will come from the rule engine")
	}

	var verdictCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		verdictCache = cache.NewMemoryCache()
		log.Info().Dur("ttl", cfg.Cache.TTL).Msg("Verdict cache enabled")
	}

	ruleEngine := usecase.NewRuleEngine(domain.NewRestrictionRuleSet())
	classifier := usecase.NewComplianceClassifier(reasoner, ruleEngine, logger.WithComponent("classifier"))
	analysisService := usecase.NewAnalysisService(
		verdictCache,
		classifier,
		usecase.AnalysisServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Analysis.EnableDebugLogging,
		},
		logger.WithComponent("analysis"),
	)

	handler := http.NewHandler(analysisService, extractor)
	router := http.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Server listening")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
