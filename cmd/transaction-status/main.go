package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/transaction-status/main.go <gateway-order-id>")
		fmt.Println("Example: go run cmd/transaction-status/main.go kopi-rupa-a1b2c3d4-1700000000000")
		os.Exit(1)
	}

	gatewayOrderID := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create gateway client
	client := midtrans.NewClient(cfg.Midtrans, logger)

	n, raw, err := client.GetTransactionStatus(context.Background(), gatewayOrderID)
	if err != nil {
		if e, ok := err.(*errors.ErrGateway); ok {
			fmt.Fprintf(os.Stderr, "Gateway returned status %d:\n%s\n", e.StatusCode, e.Body)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Failed to fetch transaction status: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Gateway order ID: %s\n", n.OrderID)
	fmt.Printf("Transaction ID: %s\n", n.TransactionID)
	fmt.Printf("Transaction status: %s\n", n.TransactionStatus)
	if n.FraudStatus != "" {
		fmt.Printf("Fraud status: %s\n", n.FraudStatus)
	}
	fmt.Printf("Payment type: %s\n", n.PaymentType)
	fmt.Printf("Gross amount: %s\n", n.GrossAmount)
	if n.SettlementTime != "" {
		fmt.Printf("Settlement time: %s\n", n.SettlementTime)
	}

	mapping := midtrans.MapStatus(n.TransactionStatus, n.FraudStatus)
	if mapping.UpdateTransaction {
		fmt.Printf("\nMaps to internal transaction status: %s\n", mapping.TransactionStatus)
	} else {
		fmt.Printf("\nMaps to no internal state change\n")
	}

	fmt.Printf("\nRaw response:\n%s\n", raw)
}
