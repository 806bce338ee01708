// Package main provides the end-to-end scoring entry point.
// Executes: ingestion → feature aggregation → scoring → reporting
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
	"aave-credit-scorer/internal/orchestrator"
	"aave-credit-scorer/internal/pipeline"
	"aave-credit-scorer/internal/storage"
	"aave-credit-scorer/internal/storage/clickhouse"
	"aave-credit-scorer/internal/storage/memory"
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
	outputDir := flag.String("output-dir", cfg.Output.Dir, "Output directory for generated files")
	postgresDSN := flag.String("postgres-dsn", cfg.Database.PostgresDSN, "Postgres DSN (empty = in-memory stores)")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.Database.ClickHouseDSN, "ClickHouse DSN (empty = in-memory feature store)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling pipeline...\n", sig)
		cancel()
	}()

	stores, closeStores, err := createStores(ctx, *postgresDSN, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up stores: %v\n", err)
		os.Exit(1)
	}
	defer closeStores()

	// Stage 0: Ingest raw records
	fmt.Println("=== Credit Scoring Pipeline ===")
	records, err := ingestion.LoadRecords(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		os.Exit(1)
	}

	ingestResult, err := ingestion.NewRunner(stores.transactionStore, nil).Run(ctx, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingestion error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingestion completed:\n")
	fmt.Printf("  Records: %d\n", ingestResult.RecordsRead)
	fmt.Printf("  Zero-value fallbacks: %d\n", ingestResult.ZeroValueFallbacks)

	// Stages 1-3: aggregation and scoring
	orch := orchestrator.New(orchestrator.Options{
		TransactionStore: stores.transactionStore,
		FeatureStore:     stores.featureStore,
		ScoreStore:       stores.scoreStore,
		Verbose:          *verbose,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Orchestrator error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Orchestrator completed:\n")
	fmt.Printf("  Transactions: %d\n", result.TransactionsLoaded)
	fmt.Printf("  Wallets: %d\n", result.WalletsAggregated)
	fmt.Printf("  Scored: %d\n", result.WalletsScored)

	// Stage 4: reporting
	p := pipeline.NewScorePipeline(stores.transactionStore, stores.scoreStore, *outputDir)
	if err := p.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nScoring pipeline completed successfully:")
	fmt.Printf("  - %s/%s\n", *outputDir, pipeline.ScoresCSVFile)
	fmt.Printf("  - %s/%s\n", *outputDir, pipeline.HistogramPNGFile)
	fmt.Printf("  - %s/%s\n", *outputDir, pipeline.ReportMDFile)
}

// allStores holds the three pipeline stores.
type allStores struct {
	transactionStore storage.TransactionStore
	featureStore     storage.FeatureStore
	scoreStore       storage.ScoreStore
}

// createStores wires memory or database-backed stores depending on the DSNs.
// The returned close function releases any database connections.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string) (*allStores, func(), error) {
	stores := &allStores{
		transactionStore: memory.NewTransactionStore(),
		featureStore:     memory.NewFeatureStore(),
		scoreStore:       memory.NewScoreStore(),
	}

	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if postgresDSN != "" {
		pool, err := postgres.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}

		stores.transactionStore = postgres.NewTransactionStore(pool)
		stores.scoreStore = postgres.NewScoreStore(pool)
	}

	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
		}
		closers = append(closers, func() { conn.Close() })

		stores.featureStore = clickhouse.NewFeatureStore(conn)
	}

	return stores, closeAll, nil
}
