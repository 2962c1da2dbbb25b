package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vestiplan/vestiplan-backend/api/routes"
	"github.com/vestiplan/vestiplan-backend/internal/analysis"
	"github.com/vestiplan/vestiplan-backend/internal/analytics"
	"github.com/vestiplan/vestiplan-backend/internal/articles"
	"github.com/vestiplan/vestiplan-backend/internal/publisher"
	"github.com/vestiplan/vestiplan-backend/internal/suggestions"
	"github.com/vestiplan/vestiplan-backend/pkg/config"
	"github.com/vestiplan/vestiplan-backend/pkg/db"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
	"github.com/vestiplan/vestiplan-backend/pkg/migrate"
	"github.com/vestiplan/vestiplan-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	articlesRepo := articles.NewRepository(dbClient.DB())

	marketplacePublisher, err := publisher.New(cfg.Publisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create publisher", err)
		os.Exit(1)
	}

	articlesService, err := articles.NewService(articlesRepo, marketplacePublisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create articles service", err)
		os.Exit(1)
	}

	suggestionsService, err := suggestions.NewService(suggestions.NewRepository(dbClient.DB()), articlesRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create suggestions service", err)
		os.Exit(1)
	}

	visionClient, err := analysis.NewVisionClient(cfg.OpenAI)
	if err != nil {
		logg.Error(context.Background(), "failed to create vision client", err)
		os.Exit(1)
	}
	analysisService, err := analysis.NewService(visionClient, cfg.OpenAI)
	if err != nil {
		logg.Error(context.Background(), "failed to create analysis service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			redisClient,
			prometheus.NewRegistry(),
			articlesService,
			suggestionsService,
			analysisService,
			analyticsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
