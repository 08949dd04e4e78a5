package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"material-requisition-api-server/config"
	"material-requisition-api-server/internal/api/routes"
	"material-requisition-api-server/internal/auth"
	"material-requisition-api-server/internal/database"
	"material-requisition-api-server/internal/sheets"
	"material-requisition-api-server/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load environment and configuration
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.Sheets.ScriptURL == "" {
		log.Fatal("sheets.scriptURL is required (SHEETS_SCRIPT_URL)")
	}
	if cfg.JWT.Secret != "" {
		auth.JwtSecret = []byte(cfg.JWT.Secret)
	}

	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("Invalid jwt.expiration: %v", err)
	}

	// 2. Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	// 3. Record store client and cache
	client := sheets.NewClient(cfg.Sheets.ScriptURL, http.DefaultClient)
	cache := store.NewCache(client, logger)
	seeder := &database.Seeder{Client: client, Logger: logger}

	ctx := context.Background()

	// 4. Make sure the sheet schema exists; optionally seed default data.
	// Failures are reported and logged, never fatal: the store stays usable
	// for whatever did get created.
	if report := seeder.EnsureSheets(ctx); len(report.Failures) > 0 {
		logger.Warn("sheet bootstrap finished with failures", zap.Int("failed", len(report.Failures)))
	}
	if cfg.Seed.OnStartup {
		seeder.SeedDefaults(ctx)
	}

	// 5. Bulk load every collection into the cache
	cache.LoadAll(ctx)

	// 6. Wire the router
	router := routes.SetupRouter(cfg, client, cache, seeder, logger, jwtExpiration)

	// 7. Start server
	logger.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
