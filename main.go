package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/app"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/config"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/configwatcher"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/database"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/logger"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/monitoring"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/tracing"
)

// @title Learnable Connect API
// @version 1.0
// @description Multi-tenant school learning platform: assessments, AI tutoring and analytics.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "configs", "config directory")
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.SeedBootstrapAdmin(db, &cfg.Bootstrap); err != nil {
		logger.Log.Fatal("Failed to seed bootstrap admin", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration complete, exiting")
		return
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to connect to redis", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learnable-connect", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(ctx)
			}()
		}
	}

	application, err := app.New(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	go configwatcher.WatchConfig(*configPath+"/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		cfg.CORS = newCfg.CORS
		cfg.RateLimit = newCfg.RateLimit
		cfg.AI = newCfg.AI
	})

	go func() {
		if err := application.Run(); err != nil {
			logger.Log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
	logger.Log.Info("Server stopped")
}
