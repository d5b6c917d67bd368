// Command api serves the storefront and back-office HTTP API.
//
// @title                       Storefront API
// @version                     1.0
// @description                 Catalog, orders, checkout and back office for the storefront.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopfront/storefront/internal/api"
	"github.com/shopfront/storefront/internal/infrastructure/config"
	mongorepo "github.com/shopfront/storefront/internal/infrastructure/db/mongo"
	redisrepo "github.com/shopfront/storefront/internal/infrastructure/db/redis"
	"github.com/shopfront/storefront/internal/infrastructure/payment"
	"github.com/shopfront/storefront/internal/infrastructure/storage"
	"github.com/shopfront/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
		Env:     cfg.Env,
	})

	ctx := context.Background()

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
		MinPoolSize: cfg.Mongo.MinPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	images, err := storage.New(ctx, storage.Config{
		Driver:     cfg.Storage.Driver,
		LocalRoot:  cfg.Storage.LocalRoot,
		S3Bucket:   cfg.Storage.S3Bucket,
		S3Region:   cfg.Storage.S3Region,
		S3Endpoint: cfg.Storage.S3Endpoint,
		S3Key:      cfg.Storage.S3Key,
		S3Secret:   cfg.Storage.S3Secret,
		S3URL:      cfg.Storage.S3URL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise image storage")
	}

	if cfg.Stripe.SecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is empty; checkout will fail")
	}
	payments := payment.NewStripeGateway(payment.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
		BaseURL:       cfg.BaseURL,
	})

	e := api.NewRouter(api.Dependencies{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Images:   images,
		Payments: payments,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("storage", cfg.Storage.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("error closing redis")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error disconnecting mongodb")
	}
	log.Info().Msg("server stopped gracefully")
}
