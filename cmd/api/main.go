package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/scrum-assistant/docs"
	pkgvalidator "github.com/johnquangdev/scrum-assistant/pkg/validator"

	"github.com/johnquangdev/scrum-assistant/internal/adapter/handler"
	"github.com/johnquangdev/scrum-assistant/internal/adapter/repository"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/cache"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/storage"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/ceremony"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/meeting"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/metrics"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/summary"
	"github.com/johnquangdev/scrum-assistant/pkg/config"
)

// @title           Scrum Assistant API
// @version         1.0
// @description     Backend for running Scrum ceremonies: live meeting sessions, metrics, summaries and project/task collections.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /api

// maxBodySize bounds request bodies, including collection documents
const maxBodySize = "1M"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(maxBodySize))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")
	ctx := context.Background()
	clk := clock.New()

	// Initialize document store
	var docs repositories.DocumentStore
	switch cfg.Store.Driver {
	case "postgres":
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			log.Println("🔄 Running sql-migrate migrations...")
			if err := database.AutoMigrate(db, cfg.Database.MigrationsDir); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		} else {
			log.Println("🔄 Skipping migrations; run scripts/migrate.go to manage the schema")
		}
		docs = repository.NewDocumentRepository(db, logger)
	default:
		log.Printf("📁 Using file store in %s", cfg.Store.DataDir)
		fileStore, err := storage.NewFileStore(cfg.Store.DataDir, logger)
		if err != nil {
			log.Fatalf("Failed to initialize file store: %v", err)
		}
		docs = fileStore
	}

	// Initialize session snapshot store
	var snapshots repository.SnapshotStore
	switch cfg.Session.Backend {
	case "redis":
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		snapshots = cache.NewRedisStore(redisClient)
	default:
		log.Println("🧠 Keeping sessions in memory")
		memoryStore := cache.NewMemoryStore(clk)
		defer memoryStore.Close()
		snapshots = memoryStore
	}

	// Initialize catalog and services
	log.Println("📚 Loading ceremony catalog...")
	catalog, err := ceremony.Default()
	if err != nil {
		log.Fatalf("Failed to load ceremony catalog: %v", err)
	}

	opts := []meeting.Option{
		meeting.WithClock(clk),
		meeting.WithMaxDuration(cfg.Session.MaxDuration),
	}
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to summary archive...")
		archive, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		opts = append(opts, meeting.WithArchiver(archive))
		log.Printf("✅ Summaries archived to bucket %s", cfg.Storage.BucketName)
	}

	log.Println("✨ Initializing meeting service...")
	meetingService := meeting.NewMeetingService(
		repository.NewSessionRepository(snapshots, cfg.Session.TTL, logger),
		summary.NewGenerator(docs, metrics.NewAggregator(), logger),
		catalog,
		logger,
		opts...,
	)

	if err := meetingService.StartSweeper(ctx, cfg.Session.SweepInterval); err != nil {
		log.Fatalf("Failed to start session sweeper: %v", err)
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		clk,
		handler.NewCollectionHandler(docs, logger),
		handler.NewSessionHandler(meetingService, clk, cfg.Session.TickInterval, logger),
		handler.NewSummaryHandler(meetingService, logger),
		handler.NewCeremonyHandler(catalog, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/api/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
	if err := meetingService.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Pending summary archives cancelled: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// newLogger builds a JSON logger in production and a console logger otherwise
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Log.Level, err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
