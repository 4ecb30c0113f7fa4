package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mirrorworld/avatar-backend/internal/api/handler"
	"github.com/mirrorworld/avatar-backend/internal/api/router"
	"github.com/mirrorworld/avatar-backend/internal/archive"
	"github.com/mirrorworld/avatar-backend/internal/assets"
	"github.com/mirrorworld/avatar-backend/internal/config"
	"github.com/mirrorworld/avatar-backend/internal/notify"
	"github.com/mirrorworld/avatar-backend/internal/pipeline"
	"github.com/mirrorworld/avatar-backend/internal/pipeline/stages"
	"github.com/mirrorworld/avatar-backend/shared/logger"
	"github.com/mirrorworld/avatar-backend/shared/postgresql"
	"github.com/mirrorworld/avatar-backend/shared/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("AVATAR_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/avatar-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting avatar service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Initialize asset store
	assetStore, err := assets.NewStore(&assets.Config{
		Dir:     cfg.Assets.Dir,
		BaseURL: cfg.Assets.BaseURL,
	}, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize asset store: %w", err)
	}

	appLogger.Info("Asset store ready",
		slog.String("dir", cfg.Assets.Dir),
	)

	// Optional terminal sinks
	var sinks []pipeline.TerminalSink
	var dbClient *postgresql.Client
	var rabbitClient *rabbitmq.Client

	if cfg.Archive.Enabled {
		dbClient, err = initPostgreSQL(&cfg.Archive.Database, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		recorder, err := archive.NewRecorder(context.Background(), dbClient, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize job archive: %w", err)
		}
		sinks = append(sinks, recorder)

		appLogger.Info("Job archive enabled")
	}

	if cfg.Notify.Enabled {
		rabbitClient, err = initRabbitMQ(&cfg.Notify.RabbitMQ, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		sinks = append(sinks, notify.NewPublisher(rabbitClient, appLogger.Logger))

		appLogger.Info("Job event notifications enabled")
	}

	// Wire the orchestration core
	registry := pipeline.NewRegistry()
	executor := pipeline.NewExecutor(&pipeline.ExecutorConfig{
		Registry: registry,
		Handlers: stages.NewSimulatedSet(cfg.Pipeline.StageDelayUnit),
		Assets:   assetStore,
		Logger:   appLogger.Logger,
		Sinks:    sinks,
	})
	scheduler := pipeline.NewScheduler(&pipeline.SchedulerConfig{
		Registry: registry,
		Executor: executor,
		Logger:   appLogger.Logger,
	})
	statusReader := pipeline.NewStatusReader(registry)

	// Initialize router
	r := initRouter(cfg, appLogger.Logger, scheduler, statusReader, assetStore)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("Avatar service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
	}

	// Let in-flight pipelines reach a terminal state
	done := make(chan struct{})
	go func() {
		scheduler.Wait()
		close(done)
	}()

	select {
	case <-done:
		appLogger.Info("All pipelines finished")
	case <-time.After(cfg.Server.ShutdownTimeout):
		appLogger.Warn("Pipeline shutdown timeout exceeded, forcing exit")
	}

	if dbClient != nil {
		dbClient.Close()
	}
	if rabbitClient != nil {
		rabbitClient.Close()
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initPostgreSQL initializes the PostgreSQL database client
func initPostgreSQL(cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	dbConfig := &postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}

	return postgresql.NewClient(dbConfig, logger)
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}

	return rabbitmq.NewClient(rabbitConfig, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(cfg *config.Config, logger *slog.Logger, scheduler *pipeline.Scheduler, status *pipeline.StatusReader, assetStore *assets.Store) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:        logger,
		Scheduler:     scheduler,
		Status:        status,
		Assets:        assetStore,
		EstimatedTime: cfg.Pipeline.EstimatedTime,
		MaxImageSize:  cfg.Pipeline.MaxImageSize,
	}

	return router.SetupRouter(handlerDeps)
}
