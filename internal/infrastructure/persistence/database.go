package persistence

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/identity"
	"github.com/baogia/backend/internal/domain/printing"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/settings"
	"github.com/baogia/backend/internal/infrastructure/config"
	"github.com/baogia/backend/internal/infrastructure/logger"
)

// Database holds the database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a silent database connection, used by the
// migration CLI and in tests
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return newDatabase(cfg, gormlogger.Default.LogMode(gormlogger.Silent))
}

// NewDatabaseWithLogger creates a database connection whose query log
// flows through the application's zap logger at the given level
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, zapLogger *zap.Logger, level string) (*Database, error) {
	return newDatabase(cfg, logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(level)))
}

func newDatabase(cfg *config.DatabaseConfig, gormLog gormlogger.Interface) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// AutoMigrate creates or updates the schema for every aggregate. The
// sqlite driver relies on this; postgres deployments use the versioned
// SQL migrations instead.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&identity.User{},
		&settings.CompanyProfile{},
		&catalog.MainCategory{},
		&catalog.Entry{},
		&quote.Quote{},
		&quote.LineItem{},
		&quote.Installment{},
		&quote.Template{},
		&quote.TemplateItem{},
		&costing.Sheet{},
		&costing.MaterialLine{},
		&costing.LaborLine{},
		&costing.OtherCostLine{},
		&costing.Material{},
		&costing.Template{},
		&printing.PrintTemplate{},
		&printing.PrintJob{},
	)
}
