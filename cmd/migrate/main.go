package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/baogia/backend/internal/infrastructure/config"
	"github.com/baogia/backend/internal/infrastructure/logger"
	"github.com/baogia/backend/internal/infrastructure/migration"
	"github.com/baogia/backend/internal/infrastructure/persistence"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	if migrationsPath == "" {
		migrationsPath = defaultMigrationsPath
	}

	// create needs no database connection
	if command == "create" {
		if len(args) < 2 {
			log.Fatal("create requires a migration name")
		}
		file, err := migration.CreateMigration(migrationsPath, args[1], "")
		if err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		log.Info("created migration",
			zap.String("up", file.UpPath),
			zap.String("down", file.DownPath),
		)
		return
	}

	// auto runs gorm schema migration; the only option for sqlite
	if command == "auto" || cfg.Database.Driver == "sqlite" {
		if command != "auto" {
			log.Fatal("versioned migrations require the postgres driver; run the auto command for sqlite")
		}
		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("auto migration failed", zap.Error(err))
		}
		log.Info("auto migration complete")
		return
	}

	m, err := migration.NewFromURL(cfg.Database.DSN(), migrationsPath, log)
	if err != nil {
		log.Fatal("failed to initialize migrator", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(args) < 2 {
			log.Fatal("steps requires a count (negative rolls back)")
		}
		var n int
		n, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid step count", zap.String("value", args[1]))
		}
		err = m.Steps(n)
	case "goto":
		if len(args) < 2 {
			log.Fatal("goto requires a version")
		}
		var v uint64
		v, err = strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatal("invalid version", zap.String("value", args[1]))
		}
		err = m.GoTo(uint(v))
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version")
		}
		var v int
		v, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid version", zap.String("value", args[1]))
		}
		err = m.Force(v)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			log.Info("current version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
	case "drop":
		err = m.Drop()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
	log.Info("done", zap.String("command", command))
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command> [args]

Commands:
  up              Apply all pending migrations
  down            Roll back all migrations
  steps <n>       Apply n migrations (negative rolls back)
  goto <version>  Migrate to a specific version
  force <version> Set the version without running migrations
  version         Print the current version
  drop            Drop everything in the database
  create <name>   Create a new pair of migration files
  auto            Run gorm schema migration (required for sqlite)

Flags:
  -path       Path to migrations directory (default: ./migrations)
  -log-level  Log level (debug, info, warn, error)`)
}
