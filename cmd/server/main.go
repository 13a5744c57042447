package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"filecrate/internal/config"
	"filecrate/internal/handler"
	"filecrate/internal/middleware"
	"filecrate/internal/repository/postgres"
	"filecrate/internal/scheduler"
	"filecrate/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	folderService := service.NewFolderService(folderRepo, fileRepo, txManager, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, logger)
	cleanupService := service.NewCleanupService(folderRepo, fileRepo, cfg.RetentionDays, logger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour, logger)

	logger.Info("services initialized")

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	folderHandler := handler.NewFolderHandler(folderService, fileService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)

	// Storage routes require an authenticated owner
	storage := http.NewServeMux()
	storage.HandleFunc("POST /api/folders", folderHandler.Create)
	storage.HandleFunc("GET /api/folders", folderHandler.ListAll)
	storage.HandleFunc("GET /api/folders/root", folderHandler.ListRoot)
	storage.HandleFunc("GET /api/folders/{id}", folderHandler.Get)
	storage.HandleFunc("GET /api/folders/{id}/children", folderHandler.ListChildren)
	storage.HandleFunc("GET /api/folders/{id}/files", folderHandler.ListFiles)
	storage.HandleFunc("PATCH /api/folders/{id}", folderHandler.Rename)
	storage.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)
	storage.HandleFunc("POST /api/files", fileHandler.Upload)
	storage.HandleFunc("GET /api/files/root", fileHandler.ListRoot)
	storage.HandleFunc("GET /api/files/{id}", fileHandler.Get)
	storage.HandleFunc("GET /api/files/{id}/download", fileHandler.Download)
	storage.HandleFunc("DELETE /api/files/{id}", fileHandler.Delete)
	authed := middleware.Auth(cfg.JWTSecret)(storage)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("/api/folders", authed)
	mux.Handle("/api/folders/", authed)
	mux.Handle("/api/files", authed)
	mux.Handle("/api/files/", authed)

	// Middleware chain: CORS → Recovery → Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)
	root = cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}).Handler(root)

	// Start the daily retention sweep
	sweeper := scheduler.NewSweeper(cleanupService, cfg.CleanupHour, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
