package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/baogia/backend/internal/application/catalog"
	costingapp "github.com/baogia/backend/internal/application/costing"
	identityapp "github.com/baogia/backend/internal/application/identity"
	printingapp "github.com/baogia/backend/internal/application/printing"
	quoteapp "github.com/baogia/backend/internal/application/quote"
	settingsapp "github.com/baogia/backend/internal/application/settings"
	"github.com/baogia/backend/internal/infrastructure/auth"
	"github.com/baogia/backend/internal/infrastructure/config"
	"github.com/baogia/backend/internal/infrastructure/logger"
	"github.com/baogia/backend/internal/infrastructure/persistence"
	printinginfra "github.com/baogia/backend/internal/infrastructure/printing"
	"github.com/baogia/backend/internal/infrastructure/session"
	"github.com/baogia/backend/internal/interfaces/http/handler"
	"github.com/baogia/backend/internal/interfaces/http/middleware"
	"github.com/baogia/backend/internal/interfaces/http/router"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting baogia backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	quoteTemplateRepo := persistence.NewGormQuoteTemplateRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	categoryRepo := persistence.NewGormMainCategoryRepository(db.DB)
	profileRepo := persistence.NewGormCompanyProfileRepository(db.DB)
	sheetRepo := persistence.NewGormSheetRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	costingTemplateRepo := persistence.NewGormCostingTemplateRepository(db.DB)
	printTemplateRepo := persistence.NewGormPrintTemplateRepository(db.DB)
	printJobRepo := persistence.NewGormPrintJobRepository(db.DB)

	// Quote draft store: Redis, with in-memory fallback when allowed
	draftStore, err := session.NewDraftStoreFactory(session.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, session.WithLogger(log), session.WithInMemoryFallback(cfg.Session.AllowInMemoryFallback)).CreateStore()
	if err != nil {
		log.Fatal("failed to create quote draft store", zap.Error(err))
	}

	// PDF rendering and storage
	pdfRenderer, err := printinginfra.NewChromedpRenderer(&printinginfra.ChromedpConfig{
		DefaultTimeout: cfg.Printing.RenderTimeout,
		RemoteURL:      cfg.Printing.ChromeURL,
		Headless:       true,
		NoSandbox:      cfg.Printing.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() { _ = pdfRenderer.Close() }()

	pdfStorage, err := newPDFStorage(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize PDF storage", zap.Error(err))
	}

	htmlRenderer, err := printinginfra.NewHTMLRenderer()
	if err != nil {
		log.Fatal("failed to initialize HTML renderer", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	settingsService := settingsapp.NewService(profileRepo, log)
	catalogService := catalogapp.NewService(entryRepo, categoryRepo, log)
	quoteService := quoteapp.NewService(quoteRepo, quoteTemplateRepo, entryRepo, profileRepo, log)
	draftService := quoteapp.NewDraftService(draftStore, cfg.Session.DraftTTL, log)
	profitService := quoteapp.NewProfitService(quoteRepo, sheetRepo, log)
	costingService := costingapp.NewService(sheetRepo, materialRepo, costingTemplateRepo, log)
	printService := printingapp.NewPrintService(
		quoteRepo, profileRepo, categoryRepo, userRepo,
		printTemplateRepo, printJobRepo,
		printinginfra.NewComposer(), htmlRenderer, pdfRenderer, pdfStorage,
		log,
	)

	middleware.SetupValidator()

	routerCfg := router.DefaultConfig(jwtService, log)
	routerCfg.MaxBodyBytes = cfg.HTTP.MaxBodySize
	routerCfg.RequestTimeout = cfg.HTTP.WriteTimeout
	if cfg.Storage.Backend == "filesystem" {
		routerCfg.PrintsDir = cfg.Storage.BasePath
	}

	engine := router.Setup(routerCfg, router.Handlers{
		System:   handler.NewSystemHandler(db.DB, version),
		Auth:     handler.NewAuthHandler(authService),
		Settings: handler.NewSettingsHandler(settingsService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Quote:    handler.NewQuoteHandler(quoteService, draftService, profitService),
		Costing:  handler.NewCostingHandler(costingService),
		Printing: handler.NewPrintingHandler(printService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// newPDFStorage builds the configured storage backend
func newPDFStorage(cfg *config.Config, log *zap.Logger) (printinginfra.PDFStorage, error) {
	if cfg.Storage.Backend == "s3" {
		return printinginfra.NewS3PDFStorage(&printinginfra.S3StorageConfig{
			Endpoint:          cfg.Storage.Endpoint,
			Region:            cfg.Storage.Region,
			Bucket:            cfg.Storage.Bucket,
			AccessKey:         cfg.Storage.AccessKey,
			SecretKey:         cfg.Storage.SecretKey,
			UseSSL:            cfg.Storage.UseSSL,
			UsePathStyle:      cfg.Storage.UsePathStyle,
			PresignExpiration: cfg.Storage.PresignExpiration,
			Logger:            log,
		})
	}
	return printinginfra.NewFileSystemStorage(&printinginfra.FileSystemStorageConfig{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
		Logger:   log,
	})
}
