package main

import (
	"context"
	"log"
	"time"

	"github.com/garudaai/umkm-api/internal/application/service"
	"github.com/garudaai/umkm-api/internal/config"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/internal/infrastructure/repository"
	"github.com/garudaai/umkm-api/internal/presentation/http/handler"
	"github.com/garudaai/umkm-api/internal/presentation/http/routes"
	"github.com/garudaai/umkm-api/pkg/llm"
	"github.com/garudaai/umkm-api/pkg/logger"
	"github.com/garudaai/umkm-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	if err := logger.Init(cfg.App.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	gormDB, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.NewDB(gormDB)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	umkmRepo := repository.NewUmkmRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Sweep expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.Error("Failed to clean up idempotency keys", "error", err)
			}
		}
	}()

	// Initialize LLM client
	llmClient := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	umkmService := service.NewUmkmService(umkmRepo)
	productService := service.NewProductService(productRepo, umkmRepo)
	customerService := service.NewCustomerService(customerRepo, umkmRepo)
	transactionService := service.NewTransactionService(db, transactionRepo, sequenceRepo, productRepo, customerRepo, umkmRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo, umkmRepo)
	insightService := service.NewInsightService(analyticsService, analyticsRepo, umkmRepo, llmClient)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Umkm:        handler.NewUmkmHandler(umkmService),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Analytics:   handler.NewAnalyticsHandler(analyticsService, insightService),
	}

	// Setup routes and start server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	logger.Info("Starting server", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
