package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ncosearch/internal/config"
	"github.com/kailas-cloud/ncosearch/internal/db"
	"github.com/kailas-cloud/ncosearch/internal/db/memory"
	dbRedis "github.com/kailas-cloud/ncosearch/internal/db/redis"
	"github.com/kailas-cloud/ncosearch/internal/db/sqlite"
	"github.com/kailas-cloud/ncosearch/internal/domain"
	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/rank"
	logpkg "github.com/kailas-cloud/ncosearch/internal/logger"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
	auditrepo "github.com/kailas-cloud/ncosearch/internal/repository/audit"
	recordrepo "github.com/kailas-cloud/ncosearch/internal/repository/record"
	synonymrepo "github.com/kailas-cloud/ncosearch/internal/repository/synonym"
	chiTransport "github.com/kailas-cloud/ncosearch/internal/transport/chi"
	audituc "github.com/kailas-cloud/ncosearch/internal/usecase/audit"
	healthuc "github.com/kailas-cloud/ncosearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/ncosearch/internal/usecase/index"
	ingestuc "github.com/kailas-cloud/ncosearch/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/ncosearch/internal/usecase/search"
	synonymuc "github.com/kailas-cloud/ncosearch/internal/usecase/synonym"
	"github.com/kailas-cloud/ncosearch/internal/version"
)

func main() {
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

	logger.Info("Starting ncosearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := openStore(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	metrics.RegisterSearchMetrics()

	recordRepo := recordrepo.New(store)
	synonymRepo := synonymrepo.New(store)
	auditRepo := auditrepo.New(store)

	active := domidx.NewActive()

	ingestSvc := ingestuc.New(recordRepo, logger)
	indexSvc := indexuc.New(recordRepo, active, cfg.Index.Workers, logger)
	synonymSvc := synonymuc.New(synonymRepo, logger)
	auditSvc := audituc.New(auditRepo, cfg.Audit.DefaultLimit)
	searchSvc := searchuc.New(synonymSvc, auditSvc, active, searchuc.Config{
		DefaultTopK: cfg.Search.DefaultTopK,
		MaxTopK:     cfg.Search.MaxTopK,
		Scoring: rank.Scoring{
			TitleBonus:       *cfg.Search.TitleBonus,
			OverlapThreshold: *cfg.Search.TitleOverlapThreshold,
		},
		Bidirectional: *cfg.Search.BidirectionalSynonyms,
	}, logger)
	healthSvc := healthuc.New(store, active)

	// A persistent store may already hold a vocabulary from a previous run.
	if n, err := indexSvc.Build(ctx); err == nil {
		logger.Info("Index restored from store", zap.Int("records", n))
	} else if !errors.Is(err, domain.ErrEmptyVocabulary) {
		logger.Warn("Initial index build failed", zap.Error(err))
	}

	server := chiTransport.NewServer(ingestSvc, indexSvc, searchSvc, synonymSvc, auditSvc, healthSvc, logger).
		WithMaxUploadBytes(cfg.HTTP.MaxUploadBytes)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func openStore(cfg *config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite:
		s, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.DriverValkey, config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Username:  cfg.Username,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
