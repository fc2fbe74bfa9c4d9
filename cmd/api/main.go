package main

// @title DXF Analyzer API
// @version 1.0.0
// @description Сервис анализа DXF чертежей. Классифицирует сущности чертежа
// @description на валидные и фантомные (служебная/конструкционная геометрия),
// @description считает bounding box, центр чертежа и суммарную длину реза.
// @description
// @description Основные возможности:
// @description - Анализ загруженного DXF файла
// @description - Фильтрация фантомных сущностей с кодом причины
// @description - Кеширование отчётов по контрольной сумме файла
// @description - История анализов

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/dxf-analyzer/docs"
	"github.com/dxf-analyzer/internal/config"
	httpDelivery "github.com/dxf-analyzer/internal/delivery/http"
	"github.com/dxf-analyzer/internal/delivery/http/handler"
	"github.com/dxf-analyzer/internal/domain/repository"
	"github.com/dxf-analyzer/internal/parser"
	"github.com/dxf-analyzer/internal/pkg/logger"
	"github.com/dxf-analyzer/internal/repository/cache"
	"github.com/dxf-analyzer/internal/repository/postgres"
	"github.com/dxf-analyzer/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting DXF Analyzer")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("db_enabled", cfg.Database.Enabled),
	)

	// 3. Connect to Redis (optional report cache)
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 4. Connect to PostgreSQL (optional analysis history)
	var historyRepo repository.AnalysisRepository
	var db *postgres.DB
	if cfg.Database.Enabled {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		historyRepo, err = postgres.NewAnalysisRepository(ctx, db, log)
		cancel()
		if err != nil {
			log.Fatal("Failed to initialize analysis repository", zap.Error(err))
		}
	}

	// 5. Initialize engine and use cases
	classifier, err := usecase.NewClassifier(cfg.Classifier)
	if err != nil {
		log.Fatal("Failed to initialize classifier", zap.Error(err))
	}

	dxfParser := parser.New(log)

	analysisUC := usecase.NewAnalysisUseCase(
		dxfParser,
		classifier,
		cacheRepo,
		historyRepo,
		cfg.Cache.ReportCacheTTL,
		log,
	)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP handlers and server
	analysisHandler := handler.NewAnalysisHandler(analysisUC, cfg.Upload.MaxFileSizeMB, log)

	server := httpDelivery.NewServer(cfg, log, analysisHandler)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
