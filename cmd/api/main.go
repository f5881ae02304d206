package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/campusops/college-roster/docs" // swagger docs

	"github.com/campusops/college-roster/internal/api"
	"github.com/campusops/college-roster/internal/api/handler"
	"github.com/campusops/college-roster/internal/core/service"
	"github.com/campusops/college-roster/internal/infrastructure/config"
	mongodb "github.com/campusops/college-roster/internal/infrastructure/db/mongo"
	redisdb "github.com/campusops/college-roster/internal/infrastructure/db/redis"
	healthhandlers "github.com/campusops/college-roster/internal/infrastructure/http/handlers"
	"github.com/campusops/college-roster/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title College Roster API
// @version 1.0
// @description HTTP backend for managing college user records with JWT-based authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Algorithm:  cfg.JWT.Algorithm,
		DefaultTTL: cfg.JWT.TokenTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}

	authService := service.NewAuthService(userRepo, tokens, cfg.JWT.LoginTokenTTL, log)
	userService := service.NewUserService(userRepo, redisdb.NewExportCache(rdb), log)

	e := api.NewRouter(api.RouterConfig{
		AuthHandler: handler.NewAuthHandler(authService),
		UserHandler: handler.NewUserHandler(userService),
		Health:      healthhandlers.NewHealthHandler(),
		Ready:       healthhandlers.NewHealthDependenciesHandler(db, rdb),
		Verifier:    tokens,
		Store:       userRepo,
		CORSOrigins: cfg.CORSOrigins,
	}, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
