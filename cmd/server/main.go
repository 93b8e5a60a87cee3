package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/api"
	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/internal/repository/postgres"
	"github.com/rupavo/payments-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Payment gateway client
	gateway := midtrans.NewClient(cfg.Midtrans, logger)

	// Business services
	services := api.Services{
		Payments: service.NewPaymentService(repos, gateway, cfg.Platform, logger),
		Webhooks: service.NewWebhookService(repos, cfg.Midtrans.ServerKey, logger),
		Payouts:  service.NewPayoutService(repos, cfg.Platform, logger),
	}

	router := api.NewRouter(cfg, repos, services, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
