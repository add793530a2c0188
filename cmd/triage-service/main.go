package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "go.uber.org/automaxprocs"

	"clinictriage/cmd/triage-service/internal/biz"
	"clinictriage/cmd/triage-service/internal/conf"
	"clinictriage/cmd/triage-service/internal/data"
	"clinictriage/cmd/triage-service/internal/server"
	"clinictriage/cmd/triage-service/internal/service"
	"clinictriage/pkg/crypto"
)

var configFile = flag.String("config", "", "config file path")

func main() {
	flag.Parse()

	config, err := conf.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := initLogger(config.Observability)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting triage service",
		zap.String("version", config.Observability.ServiceVersion),
		zap.String("environment", config.Observability.Environment),
	)

	knowledge := data.NewStaticKnowledgeBase(config.Knowledge)
	engine := biz.NewEngine(knowledge, biz.EngineConfig{
		MaxResponseTime: config.Engine.MaxResponseTime,
		CacheEnabled:    config.Engine.CacheEnabled,
		CacheTTL:        config.Engine.CacheTTL,
		CacheSize:       config.Engine.CacheSize,
	}, logger)
	defer engine.Close()

	var store *data.RedisTriageStore
	if config.Persistence.Enabled {
		key, err := hex.DecodeString(config.Persistence.KeyHex)
		if err != nil || len(key) != 32 {
			logger.Fatal("persistence enabled but key_hex is not a 32-byte hex key")
		}
		cipher, err := crypto.NewFieldCipher(key)
		if err != nil {
			logger.Fatal("init field cipher", zap.Error(err))
		}
		store = data.NewRedisTriageStore(config.Redis, cipher, logger)
	}

	triageService := service.NewTriageService(engine, store, config.Persistence.Enabled, logger)
	httpServer := server.NewHTTPServer(triageService, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Server.HTTPPort),
		Handler:      httpServer.Engine(),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.MetricsPort),
		Handler: promhttp.Handler(),
	}

	go func() {
		logger.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("Metrics server starting", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Metrics server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Servers exited")
}

func initLogger(cfg conf.ObservabilityConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.LogFormat == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	zapConfig.InitialFields = map[string]interface{}{
		"service":     cfg.ServiceName,
		"version":     cfg.ServiceVersion,
		"environment": cfg.Environment,
	}

	return zapConfig.Build()
}
