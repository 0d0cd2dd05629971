package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/config"
	dbRedis "github.com/herohuntr/huntr/internal/db/redis"
	logpkg "github.com/herohuntr/huntr/internal/logger"
	"github.com/herohuntr/huntr/internal/metrics"
	"github.com/herohuntr/huntr/internal/repository/pagecache"
	"github.com/herohuntr/huntr/internal/transport/backend"
	chiTransport "github.com/herohuntr/huntr/internal/transport/chi"
	healthuc "github.com/herohuntr/huntr/internal/usecase/health"
	"github.com/herohuntr/huntr/internal/usecase/search"
	sessionuc "github.com/herohuntr/huntr/internal/usecase/session"
	"github.com/herohuntr/huntr/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting huntr session server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	fetcher := backend.NewClient(&backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		SearchPath: cfg.Backend.SearchPath,
		Timeout:    cfg.Backend.Timeout(),
		UserAgent:  version.UserAgent(),
		Logger:     logger,
	})

	// Result cache: private memory per session, optionally backed by a shared Redis tier.
	newCache := func() search.Cache { return pagecache.NewMemory() }
	var cachePinger healthuc.CachePinger

	if cfg.Cache.Driver == "redis" {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Cache.Addrs,
			Password:   cfg.Cache.Password,
			Standalone: cfg.Cache.Standalone,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to shared cache", zap.Strings("addrs", cfg.Cache.Addrs))

		prefix := cfg.Cache.KeyPrefix
		newCache = func() search.Cache {
			return pagecache.NewTiered(pagecache.NewMemory(), store, prefix, metrics.QueryCacheTotal, logger)
		}
		cachePinger = store
	}

	sessions := sessionuc.New(fetcher, newCache, sessionuc.Config{
		Max:         cfg.Sessions.Max,
		IdleTimeout: cfg.Sessions.IdleTimeout(),
		PageSize:    cfg.Backend.PageSize,
		Logger:      logger,
	})
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx)
	healthSvc := healthuc.New(cachePinger)

	server := chiTransport.NewServer(sessions, healthSvc, logger)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully", zap.Int("sessions", sessions.Len()))
}
