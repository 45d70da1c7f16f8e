package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	_ "github.com/orgboard/orgboard-api/docs"
	"github.com/orgboard/orgboard-api/internal/api"
	"github.com/orgboard/orgboard-api/internal/api/metrics"
	"github.com/orgboard/orgboard-api/internal/core/ports"
	"github.com/orgboard/orgboard-api/internal/core/rbac"
	"github.com/orgboard/orgboard-api/internal/core/service"
	"github.com/orgboard/orgboard-api/internal/infrastructure/config"
	mongodb "github.com/orgboard/orgboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/orgboard/orgboard-api/internal/infrastructure/db/redis"
	"github.com/orgboard/orgboard-api/internal/infrastructure/db/sqlite"
	"github.com/orgboard/orgboard-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	matrix := rbac.Default()
	if cfg.PermissionMatrixPath != "" {
		matrix, err = rbac.LoadMatrixFile(cfg.PermissionMatrixPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.PermissionMatrixPath).Msg("invalid permission matrix")
		}
		log.Info().Str("path", cfg.PermissionMatrixPath).Msg("permission matrix overridden")
	}

	deps := api.Deps{
		Matrix:     matrix,
		Log:        log,
		LoginRPS:   rate.Limit(cfg.LoginRPS),
		LoginBurst: cfg.LoginBurst,
	}

	var (
		creds    ports.CredentialStore
		sessions ports.SessionStore
		cleanup  func()
	)

	switch cfg.StorageMode {
	case config.StorageServer:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}

		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}

		creds = users
		sessions = redisdb.NewSessionStore(rdb, cfg.Redis.Owner, cfg.TokenTTL)
		deps.Mongo = db
		deps.Redis = rdb
		cleanup = func() {
			_ = rdb.Close()
			_ = mongodb.Disconnect(client, 5*time.Second)
		}

	case config.StorageLocal:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("sqlite open failed")
		}
		creds = store
		sessions = store
		cleanup = func() { _ = store.Close() }
	}
	defer cleanup()

	if cfg.SeedFile != "" {
		seed, err := loadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SeedFile).Msg("invalid seed file")
		}
		if err := creds.Seed(ctx, seed); err != nil {
			log.Fatal().Err(err).Msg("seeding credential store failed")
		}
		log.Info().Int("count", len(seed)).Msg("credential store seeded")
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	manager := service.NewSessionManager(creds, sessions, service.NewBcryptHasher(0), tokens, log)

	if err := manager.Initialize(ctx); err != nil {
		metrics.SessionRehydrationsTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("session rehydration failed")
	} else if manager.Current().IsAuthenticated {
		metrics.SessionRehydrationsTotal.WithLabelValues("authenticated").Inc()
	} else {
		metrics.SessionRehydrationsTotal.WithLabelValues("unauthenticated").Inc()
	}

	deps.Sessions = manager
	deps.Tokens = tokens

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageMode).Msg("orgboard api started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
