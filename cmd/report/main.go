// Package main regenerates the scoring deliverables from already-persisted
// transactions and scores.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aave-credit-scorer/internal/config"
	"aave-credit-scorer/internal/pipeline"
	"aave-credit-scorer/internal/storage/migrations"
	"aave-credit-scorer/internal/storage/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	outputDir := flag.String("output-dir", cfg.Output.Dir, "Output directory for generated files")
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
		fmt.Printf("\nReceived signal %v, cancelling report...\n", sig)
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

	txStore := postgres.NewTransactionStore(pool)
	scoreStore := postgres.NewScoreStore(pool)

	p := pipeline.NewScorePipeline(txStore, scoreStore, *outputDir)
	if err := p.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Report generated:")
	fmt.Printf("  - %s/%s\n", *outputDir, pipeline.ScoresCSVFile)
	fmt.Printf("  - %s/%s\n", *outputDir, pipeline.HistogramPNGFile)
	fmt.Printf("  - %s/%s\n", *outputDir, pipeline.ReportMDFile)
}
