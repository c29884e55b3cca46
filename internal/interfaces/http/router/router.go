package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/infrastructure/auth"
	"github.com/baogia/backend/internal/infrastructure/logger"
	"github.com/baogia/backend/internal/interfaces/http/handler"
	"github.com/baogia/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers wired into the route table
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Settings *handler.SettingsHandler
	Catalog  *handler.CatalogHandler
	Quote    *handler.QuoteHandler
	Costing  *handler.CostingHandler
	Printing *handler.PrintingHandler
}

// Config holds router-level configuration
type Config struct {
	JWTService     *auth.JWTService
	Logger         *zap.Logger
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	// PrintsDir, when set, serves stored PDFs from the filesystem
	// backend under /api/v1/prints
	PrintsDir string
}

// DefaultConfig returns router configuration with sensible limits
func DefaultConfig(jwtService *auth.JWTService, log *zap.Logger) Config {
	return Config{
		JWTService:     jwtService,
		Logger:         log,
		MaxBodyBytes:   2 << 20, // print template bodies cap at 1MB
		RateLimit:      300,
		RateWindow:     time.Minute,
		RequestTimeout: 60 * time.Second,
	}
}

// Setup builds the gin engine with the full middleware chain and route table
func Setup(cfg Config, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORS(),
		middleware.Secure(),
		middleware.BodyLimit(cfg.MaxBodyBytes),
	)
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	engine.Use(middleware.JWTAuthMiddleware(cfg.JWTService))

	engine.GET("/health", h.System.Health)
	engine.GET("/healthz", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	v1 := engine.Group("/api/v1")
	v1.GET("/health", h.System.Health)
	if cfg.PrintsDir != "" {
		v1.Static("/prints", cfg.PrintsDir)
	}

	registerAuthRoutes(v1, h.Auth)
	registerSettingsRoutes(v1, h.Settings)
	registerCatalogRoutes(v1, h.Catalog)
	registerQuoteRoutes(v1, h.Quote, h.Printing)
	registerCostingRoutes(v1, h.Costing)
	registerPrintingRoutes(v1, h.Printing)

	return engine
}

func registerAuthRoutes(rg *gin.RouterGroup, h *handler.AuthHandler) {
	g := rg.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/profile", h.GetProfile)
	g.POST("/change-password", h.ChangePassword)
}

func registerSettingsRoutes(rg *gin.RouterGroup, h *handler.SettingsHandler) {
	g := rg.Group("/settings")
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

func registerCatalogRoutes(rg *gin.RouterGroup, h *handler.CatalogHandler) {
	entries := rg.Group("/catalog/entries")
	entries.POST("", h.CreateEntry)
	entries.GET("", h.ListEntries)
	entries.GET("/:id", h.GetEntry)
	entries.PUT("/:id", h.UpdateEntry)
	entries.DELETE("/:id", h.DeleteEntry)

	categories := rg.Group("/catalog/categories")
	categories.POST("", h.CreateCategory)
	categories.GET("", h.ListCategories)
	categories.PUT("/reorder", h.ReorderCategories)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
}

func registerQuoteRoutes(rg *gin.RouterGroup, h *handler.QuoteHandler, p *handler.PrintingHandler) {
	// Draft routes precede /:id so "draft" is never parsed as a quote ID.
	quotes := rg.Group("/quotes")
	quotes.PUT("/draft", h.SaveDraft)
	quotes.GET("/draft", h.LoadDraft)
	quotes.DELETE("/draft", h.ClearDraft)

	quotes.POST("", h.Create)
	quotes.GET("", h.List)
	quotes.GET("/:id", h.Get)
	quotes.PUT("/:id", h.Update)
	quotes.DELETE("/:id", h.Delete)

	quotes.POST("/:id/items", h.AddItem)
	quotes.POST("/:id/items/from-catalog", h.AddItemFromCatalog)
	quotes.PUT("/:id/items/:itemId", h.UpdateItem)
	quotes.DELETE("/:id/items/:itemId", h.RemoveItem)

	quotes.PUT("/:id/discount", h.SetDiscount)
	quotes.PUT("/:id/tax", h.SetTax)
	quotes.POST("/:id/installments", h.AddInstallment)
	quotes.DELETE("/:id/installments/:installmentId", h.RemoveInstallment)
	quotes.GET("/:id/totals", h.GetTotals)
	quotes.PUT("/:id/status", h.ChangeStatus)
	quotes.POST("/:id/duplicate", h.Duplicate)
	quotes.POST("/:id/save-as-template", h.SaveAsTemplate)
	quotes.GET("/:id/profit", h.AnalyzeProfit)

	quotes.POST("/:id/preview", p.Preview)
	quotes.POST("/:id/print", p.GeneratePDF)
	quotes.GET("/:id/print-jobs", p.GetJobsByQuote)

	templates := rg.Group("/quote-templates")
	templates.GET("", h.ListTemplates)
	templates.GET("/:id", h.GetTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)
	templates.POST("/:id/instantiate", h.InstantiateTemplate)
}

func registerCostingRoutes(rg *gin.RouterGroup, h *handler.CostingHandler) {
	sheets := rg.Group("/costing/sheets")
	sheets.POST("", h.CreateSheet)
	sheets.GET("", h.ListSheets)
	sheets.GET("/:id", h.GetSheet)
	sheets.PUT("/:id", h.UpdateSheet)
	sheets.DELETE("/:id", h.DeleteSheet)

	sheets.PUT("/:id/overheads", h.SetOverheads)
	sheets.POST("/:id/materials", h.AddMaterialLine)
	sheets.POST("/:id/materials/from-library", h.AddMaterialFromLibrary)
	sheets.DELETE("/:id/materials/:lineId", h.RemoveMaterialLine)
	sheets.POST("/:id/labor", h.AddLaborLine)
	sheets.DELETE("/:id/labor/:lineId", h.RemoveLaborLine)
	sheets.POST("/:id/other-costs", h.AddOtherCostLine)
	sheets.DELETE("/:id/other-costs/:lineId", h.RemoveOtherCostLine)

	sheets.GET("/:id/breakdown", h.Calculate)
	sheets.POST("/:id/what-if", h.WhatIf)
	sheets.POST("/:id/duplicate", h.DuplicateSheet)
	sheets.POST("/:id/save-as-template", h.SaveTemplate)

	materials := rg.Group("/costing/materials")
	materials.PUT("", h.SaveMaterial)
	materials.GET("", h.ListMaterials)
	materials.DELETE("/:id", h.DeleteMaterial)

	templates := rg.Group("/costing/templates")
	templates.GET("", h.ListTemplates)
	templates.POST("/:id/apply", h.ApplyTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)
}

func registerPrintingRoutes(rg *gin.RouterGroup, h *handler.PrintingHandler) {
	templates := rg.Group("/print-templates")
	templates.POST("", h.CreateTemplate)
	templates.GET("", h.ListTemplates)
	templates.GET("/:id", h.GetTemplate)
	templates.PUT("/:id", h.UpdateTemplate)
	templates.PUT("/:id/default", h.SetDefaultTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)

	jobs := rg.Group("/print-jobs")
	jobs.GET("", h.ListJobs)
	jobs.GET("/:id", h.GetJob)
	jobs.GET("/:id/download", h.DownloadPDF)
}
