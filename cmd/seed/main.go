package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"filecrate/internal/config"
	"filecrate/internal/repository/postgres"
	"filecrate/internal/seed"
	"filecrate/internal/service"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't load the fixture")
	fixturePath := flag.String("fixture", "fixtures/dev.yaml", "Fixture file to load")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// Refuse destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to set up schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema ready (schema-only mode)")
		return
	}

	fx, err := seed.LoadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	applier := &seed.Applier{
		Auth:    service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour, logger),
		Folders: service.NewFolderService(folderRepo, fileRepo, txManager, logger),
		Files:   service.NewFileService(fileRepo, folderRepo, logger),
		Logger:  logger,
	}

	if err := applier.Apply(ctx, fx); err != nil {
		log.Fatalf("Failed to apply fixture: %v", err)
	}

	log.Println("Seeding complete")
}
