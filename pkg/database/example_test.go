package database_test

import (
	"context"
	"fmt"
	"log"

	"github.com/wonny/tradesim/pkg/config"
	"github.com/wonny/tradesim/pkg/database"
)

// Example demonstrates how to open the pool and read its stats
func Example() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := database.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	stats := db.Stats()
	fmt.Printf("Total connections: %d\n", stats.TotalConns)
}
