// cmd/elri-rest-api/main.go
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

	v1 "github.com/hpusset/ELRI-sub001/internal/api/rest/v1"
	"github.com/hpusset/ELRI-sub001/internal/api/web"
	"github.com/hpusset/ELRI-sub001/internal/app"
	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"
	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/bcp47"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/connector"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/metadataxml"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = persistence.CloseDB(deps.db) }()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *v1.Services
	pool     *app.WorkerPool
	pages    web.PageHandler
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	resourceRepo, err := persistence.NewGormResourceRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource repository: %w", err)
	}

	statsRepo, err := persistence.NewGormStatsRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics repository: %w", err)
	}

	jobRepo, err := persistence.NewGormJobRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create job repository: %w", err)
	}

	codec, err := metadataxml.NewCodec(&cfg.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata codec: %w", err)
	}

	registry, err := bcp47.Load(cfg.BCP47.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load subtag registry: %w", err)
	}

	// Initialize services
	statsService, err := app.NewStatsService(statsRepo, resourceRepo, codec, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics service: %w", err)
	}

	submissionService, err := app.NewResourceSubmissionService(resourceRepo, codec, statsService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission service: %w", err)
	}

	metadataService, err := app.NewResourceMetadataService(resourceRepo, statsService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata service: %w", err)
	}

	exportService, err := app.NewResourceExportService(resourceRepo, codec, submissionService, statsService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create export service: %w", err)
	}

	tmService, err := initializeTMService(cfg, log)
	if err != nil {
		return nil, err
	}

	ingestService, err := initializeIngestService(cfg, submissionService, statsService, log)
	if err != nil {
		return nil, err
	}

	processors := []processing.Processor{
		app.NewMetadataJSONProcessor(codec),
		app.NewXMLValidateProcessor(codec),
	}
	if tmService != nil {
		processors = append(processors, app.NewTMXIngestProcessor(tmService))
	}

	pool, err := app.NewWorkerPool(&cfg.Processing, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	processingService, err := app.NewProcessingService(processors, jobRepo, resourceRepo, pool, cfg.Processing.StorageDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create processing service: %w", err)
	}

	// Initialize HTML pages
	translator, err := web.NewTranslator(cfg.Site.LanguageCode, cfg.Site.Languages)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	pages, err := web.NewPageHandler(metadataService, web.NewContextProcessor(&cfg.Site, log), translator, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create page handler: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		db: db,
		services: &v1.Services{
			Submission: submissionService,
			Metadata:   metadataService,
			Export:     exportService,
			Processing: processingService,
			Stats:      statsService,
			Variants:   registry,
			TM:         tmService,
			EDelivery:  ingestService,
		},
		pool:  pool,
		pages: pages,
	}, nil
}

// initializeTMService connects the translation memory when a BaseX server is configured
func initializeTMService(cfg *config.RestConfig, log logger.Logger) (tm.TMService, error) {
	if cfg.BaseX.ServerURL == "" {
		log.Info("BaseX not configured, translation memory endpoints disabled")
		return nil, nil
	}

	opener, err := connector.NewBaseXConnector(&cfg.BaseX, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create BaseX connector: %w", err)
	}

	tmService, err := app.NewTMService(opener, cfg.BaseX.DefaultDatabase, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation memory service: %w", err)
	}
	return tmService, nil
}

// initializeIngestService creates the e-Delivery ingestion when an access point is configured
func initializeIngestService(cfg *config.RestConfig, submissionService resources.ResourceSubmissionService, recorder stats.Recorder, log logger.Logger) (edelivery.IngestService, error) {
	if cfg.EDelivery.WSDLURL == "" {
		log.Info("e-Delivery not configured, pull endpoint disabled")
		return nil, nil
	}

	client, err := connector.GetEDeliveryConnector(&cfg.EDelivery, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create e-Delivery connector: %w", err)
	}

	ingestService, err := app.NewEDeliveryIngestService(client, submissionService, recorder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create e-Delivery ingest service: %w", err)
	}
	return ingestService, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Start processing workers
	poolCtx, stopPool := context.WithCancel(context.Background())
	poolDone := make(chan error, 1)
	go func() {
		poolDone <- deps.pool.Run(poolCtx, deps.services.Processing)
	}()

	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", v1.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes and pages
	v1.SetupRoutes(r, deps.services)
	web.SetupRoutes(r, deps.pages)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	var runErr error
	select {
	case runErr = <-serverErrors:
	case sig := <-quit:
		log.Info("Initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil && runErr == nil {
		runErr = fmt.Errorf("server forced to shutdown: %w", err)
	}

	stopPool()
	select {
	case <-poolDone:
	case <-ctx.Done():
		log.Warn("processing workers did not stop in time")
	}

	if runErr == nil {
		log.Info("Server stopped gracefully")
	}
	return runErr
}
