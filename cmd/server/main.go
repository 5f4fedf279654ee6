package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/clean-auth/internal/adapter"
	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/handler"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/ratelimit"
	"github.com/MKhiriev/clean-auth/internal/server"
	"github.com/MKhiriev/clean-auth/internal/service"
	"github.com/MKhiriev/clean-auth/internal/store"
	"github.com/MKhiriev/clean-auth/internal/workers"
	"github.com/MKhiriev/clean-auth/models"
	"github.com/redis/go-redis/v9"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("clean-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
		redisClient, err = store.NewConnectRedis(ctx, cfg.Storage.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to redis")
		}
		defer redisClient.Close()
	}

	limiter, err := ratelimit.New(cfg.RateLimit, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating rate limiter")
	}

	var providers []adapter.OAuthProvider
	if cfg.OAuth.Google.ClientID != "" {
		providers = append(providers, adapter.NewGoogleProvider(cfg.OAuth.Google, log))
	} else {
		log.Warn().Msg("google login is disabled: no client id configured")
	}

	repositories := store.NewRepositories(db, log)

	services, err := service.NewServices(repositories, adapter.NewNotifier(cfg.Mail, log), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, limiter, providers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(repositories, cfg.Workers, log)
	backgroundWorkers.Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stop()
	backgroundWorkers.Wait()
	log.Info().Msg("bye")
}
