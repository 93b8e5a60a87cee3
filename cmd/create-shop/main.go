package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: go run cmd/create-shop/main.go <slug> <shop-name> <owner-name> <api-key>")
		fmt.Println("Example: go run cmd/create-shop/main.go kopi-rupa \"Kopi Rupa\" \"Dian\" \"kopi-rupa-api-key-12345\"")
		os.Exit(1)
	}

	slug := os.Args[1]
	shopName := os.Args[2]
	ownerName := os.Args[3]
	apiKey := os.Args[4]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the API key
	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Create shop
	shop := &domain.Shop{
		Slug:       slug,
		Name:       shopName,
		OwnerName:  ownerName,
		APIKeyHash: string(apiKeyHash),
		IsActive:   true,
	}

	err = repos.Shop.Create(context.Background(), shop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create shop: %v\n", err)
		os.Exit(1)
	}

	// Online ordering stays off until the merchant configures payments
	err = repos.Shop.UpsertPaymentSettings(context.Background(), &domain.ShopPaymentSettings{
		ShopID:              shop.ID,
		OnlineOrdersEnabled: false,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create payment settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Shop created successfully!\n\n")
	fmt.Printf("Shop ID: %s\n", shop.ID.String())
	fmt.Printf("Slug: %s\n", shop.Slug)
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("\nIMPORTANT: Save this API key securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this API key in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
