package main

import (
	"fmt"
	"os"

	"github.com/rupavo/payments-api/internal/auth"
	"github.com/rupavo/payments-api/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/admin-token/main.go <operator-name>")
		fmt.Println("Example: go run cmd/admin-token/main.go \"ops@rupavo\"")
		os.Exit(1)
	}

	operator := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.IssueAdminToken(operator, cfg.Admin.TokenTTL, []byte(cfg.Admin.JWTSecret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin token for %s (valid %s):\n\n", operator, cfg.Admin.TokenTTL)
	fmt.Println(token)
	fmt.Printf("\nUse it in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
