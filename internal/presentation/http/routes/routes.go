package routes

import (
	"time"

	"github.com/garudaai/umkm-api/internal/config"
	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/presentation/http/handler"
	"github.com/garudaai/umkm-api/internal/presentation/http/middleware"
	"github.com/garudaai/umkm-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Umkm        *handler.UmkmHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Analytics   *handler.AnalyticsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	umkm := protected.Group("/umkm")
	{
		umkm.POST("", h.Umkm.Create)
		umkm.GET("", h.Umkm.List)
		umkm.GET("/:id", h.Umkm.Get)
		umkm.PUT("/:id", h.Umkm.Update)
	}

	products := protected.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	customers := protected.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.POST("", idempotency, h.Transaction.Create)
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PUT("/:id", h.Transaction.Update)
		transactions.DELETE("/:id", h.Transaction.Delete)
	}

	analytics := protected.Group("/analytics")
	{
		analytics.GET("/dashboard", h.Analytics.Dashboard)
		analytics.GET("/sales-report", h.Analytics.SalesReport)
		analytics.GET("/top-products", h.Analytics.TopProducts)
		analytics.GET("/monthly-report", h.Analytics.MonthlyReport)
		analytics.GET("/payment-methods", h.Analytics.PaymentMethods)
		analytics.GET("/health-score", h.Analytics.HealthScore)
		analytics.GET("/ai-insights", h.Analytics.AIInsights)
	}
}
