package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"holdings/internal/config"
	"holdings/internal/database"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type seedHolding struct {
	symbol, name string
	quantity     int64
	avgPrice     string
	ltp          string
}

// A demo portfolio with gains and losses.
var portfolio = []seedHolding{
	{"ASHOKLEY", "Ashok Leyland", 3, "100.00", "119.10"},
	{"HDFC", "HDFC Bank", 7, "2600.15", "2497.45"},
	{"ICICIBANK", "ICICI Bank", 1, "489.10", "652.20"},
	{"IDEA", "Vodafone Idea", 71, "8.41", "9.95"},
	{"INFY", "Infosys", 5, "1500.00", "1400.00"},
	{"RELIANCE", "Reliance Industries", 4, "2400.00", "2500.50"},
	{"TCS", "Tata Consultancy Services", 10, "3000.00", "3500.00"},
}

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel, os.Stderr)
	if cfg.PostgresURL == "" {
		logger.Fatal("POSTGRES_URL is required")
	}

	db, err := database.Open(cfg.PostgresURL)
	if err != nil {
		logger.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	r := database.New(db, logger)
	ctx := context.Background()
	userID := cfg.DefaultUser

	fmt.Printf("Seeding %d holdings for %s...\n", len(portfolio), userID)
	if err := r.EnsureUserExists(ctx, userID, "Demo User"); err != nil {
		logger.Fatalf("ensure user: %v", err)
	}

	now := time.Now().UTC()
	for _, s := range portfolio {
		if err := r.EnsureStockExists(ctx, s.symbol, s.name); err != nil {
			fmt.Printf("Warning: could not create stock %s: %v\n", s.symbol, err)
			continue
		}
		if err := r.AddHolding(ctx, userID, s.symbol, decimal.NewFromInt(s.quantity), decimal.RequireFromString(s.avgPrice)); err != nil {
			fmt.Printf("Warning: could not add holding %s: %v\n", s.symbol, err)
			continue
		}
		if err := r.UpsertPrice(ctx, s.symbol, decimal.RequireFromString(s.ltp), now); err != nil {
			fmt.Printf("Warning: could not insert price for %s: %v\n", s.symbol, err)
		}
	}

	fmt.Println("Successfully seeded the demo portfolio!")
	fmt.Printf("Now fetch: http://localhost:%s/holdings/%s\n", cfg.Port, userID)
}
