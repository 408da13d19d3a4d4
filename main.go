package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/config"
	"github.com/affiche-works/affiche-engine/pkg/database"
	"github.com/affiche-works/affiche-engine/pkg/handlers"
	"github.com/affiche-works/affiche-engine/pkg/llm"
	"github.com/affiche-works/affiche-engine/pkg/logging"
	"github.com/affiche-works/affiche-engine/pkg/repositories"
	"github.com/affiche-works/affiche-engine/pkg/services"
	"github.com/affiche-works/affiche-engine/pkg/wikipedia"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("redis_cache", cfg.Redis.Host != ""))

	ctx := context.Background()

	// Run migrations using database/sql (required by golang-migrate)
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = sqlDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	cache, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	wikiClient := wikipedia.NewClient(&wikipedia.Config{
		BaseURL:     cfg.Wikipedia.BaseURL,
		RESTBaseURL: cfg.Wikipedia.RESTBaseURL,
		Timeout:     time.Duration(cfg.Wikipedia.TimeoutSeconds) * time.Second,
		CacheTTL:    time.Duration(cfg.Redis.TTLMinutes) * time.Minute,
	}, nil, cache, logger)

	llmClient, err := llm.New(&llm.Config{
		Provider: cfg.LLM.Provider,
		Endpoint: cfg.LLM.Endpoint,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	artistRepo := repositories.NewArtistRepository(db.Pool)
	printerRepo := repositories.NewPrinterRepository(db.Pool)
	publisherRepo := repositories.NewPublisherRepository(db.Pool)
	bookRepo := repositories.NewBookRepository(db.Pool)
	countryRepo := repositories.NewCountryRepository(db.Pool)
	posterRepo := repositories.NewPosterRepository(db.Pool)

	searcher := services.NewEntitySearcher(wikiClient, logger)
	researcher := services.NewResearcher(llmClient, cfg.LLM.Temperature, logger)
	normalizer := services.NewCountryNormalizer(countryRepo, logger)
	resolver := services.NewEntityResolver(
		artistRepo, printerRepo, publisherRepo, bookRepo,
		searcher, researcher, normalizer, logger)
	autoLinker := services.NewAutoLinker(resolver, posterRepo, logger)

	mux := http.NewServeMux()
	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)
	autoLinkHandler := handlers.NewAutoLinkHandler(autoLinker, logger)
	autoLinkHandler.RegisterRoutes(mux)

	logger.Info("Starting affiche-engine",
		zap.String("port", cfg.Port),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(cfg.BindAddr+":"+cfg.Port, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
