package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/api/handlers"
	"github.com/rupavo/payments-api/internal/api/middleware"
	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository"
)

// Services groups the business services the router depends on
type Services struct {
	Payments handlers.PaymentService
	Webhooks handlers.WebhookService
	Payouts  handlers.PayoutService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, services Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Storefront routes (no credential; the checkout and status page
		// are public, the webhook authenticates by signature)
		v1.POST("/payments", handlers.HandleCreatePayment(services.Payments, logger))
		v1.POST("/payments/notification", handlers.HandleNotification(services.Webhooks, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))

		// Merchant routes (require API key authentication)
		merchantRoutes := v1.Group("")
		merchantRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			merchantRoutes.POST("/payouts", handlers.HandleRequestPayout(services.Payouts, logger))
			merchantRoutes.GET("/payouts", handlers.HandleListPayouts(repos, logger))
			merchantRoutes.GET("/shops/:id/orders", handlers.HandleListShopOrders(repos, logger))
		}

		// Admin routes (require a back-office token)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware([]byte(cfg.Admin.JWTSecret), logger))
		{
			adminRoutes.POST("/payouts/:id/process", handlers.HandleAdvancePayout(services.Payouts, domain.PayoutStatusProcessing, logger))
			adminRoutes.POST("/payouts/:id/complete", handlers.HandleAdvancePayout(services.Payouts, domain.PayoutStatusCompleted, logger))
			adminRoutes.POST("/payouts/:id/fail", handlers.HandleAdvancePayout(services.Payouts, domain.PayoutStatusFailed, logger))
			adminRoutes.POST("/payouts/:id/cancel", handlers.HandleAdvancePayout(services.Payouts, domain.PayoutStatusCancelled, logger))
			adminRoutes.GET("/payouts", handlers.HandleAdminListPayouts(repos, logger))
			adminRoutes.GET("/orders", handlers.HandleAdminListOrders(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
