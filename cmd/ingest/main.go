// Package main provides the ingestion entry point: it normalizes a raw
// transactions JSON file into the Postgres transactions table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aave-credit-scorer/internal/config"
	"aave-credit-scorer/internal/ingestion"
	"aave-credit-scorer/internal/storage/migrations"
	"aave-credit-scorer/internal/storage/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	input := flag.String("input", cfg.Input.TransactionsFile, "Path to raw transactions JSON file")
	postgresDSN := flag.String("postgres-dsn", cfg.Database.PostgresDSN, "Postgres DSN")
	flag.Parse()

	if *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: -postgres-dsn is required (or set POSTGRES_DSN)")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling ingestion...\n", sig)
		cancel()
	}()

	pool, err := postgres.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
		os.Exit(1)
	}

	records, err := ingestion.LoadRecords(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		os.Exit(1)
	}

	store := postgres.NewTransactionStore(pool)
	result, err := ingestion.NewRunner(store, nil).Run(ctx, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingestion error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Ingestion completed:")
	fmt.Printf("  Records: %d\n", result.RecordsRead)
	fmt.Printf("  Normalized: %d\n", result.Normalized)
	fmt.Printf("  Zero-value fallbacks: %d\n", result.ZeroValueFallbacks)
}
