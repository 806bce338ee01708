// Package orchestrator coordinates the batch scoring pipeline.
// Flow: load transactions → feature aggregation → scoring
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sort"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/features"
	"aave-credit-scorer/internal/scoring"
	"aave-credit-scorer/internal/storage"
)

// Orchestrator runs the staged batch computation. Stages are strictly
// sequential: no stage begins before the prior stage completes in full, and
// each table is owned by exactly one stage at a time.
type Orchestrator struct {
	transactionStore storage.TransactionStore
	featureStore     storage.FeatureStore
	scoreStore       storage.ScoreStore

	verbose bool
}

// Options for creating Orchestrator.
type Options struct {
	TransactionStore storage.TransactionStore
	FeatureStore     storage.FeatureStore
	ScoreStore       storage.ScoreStore

	Verbose bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		transactionStore: opts.TransactionStore,
		featureStore:     opts.FeatureStore,
		scoreStore:       opts.ScoreStore,
		verbose:          opts.Verbose,
	}
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	TransactionsLoaded int
	WalletsAggregated  int
	WalletsScored      int
}

// Run executes the scoring stages against an already-filled transaction
// store. Every wallet present in the input receives a score; an empty store
// completes with empty feature and score tables.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}

	o.log("Stage 1: Loading transactions...")
	txs, err := o.transactionStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stage 1 (load transactions) failed: %w", err)
	}
	result.TransactionsLoaded = len(txs)
	o.log("  Loaded %d transactions", len(txs))

	o.log("Stage 2: Aggregating wallet features...")
	featuresByWallet := features.Aggregate(txs)
	result.WalletsAggregated = len(featuresByWallet)
	if err := o.persistFeatures(ctx, featuresByWallet); err != nil {
		return nil, fmt.Errorf("stage 2 (aggregate features) failed: %w", err)
	}
	o.log("  Aggregated features for %d wallets", len(featuresByWallet))

	o.log("Stage 3: Scoring wallets...")
	scores := scoring.Score(featuresByWallet)
	result.WalletsScored = len(scores)
	if err := o.persistScores(ctx, scores); err != nil {
		return nil, fmt.Errorf("stage 3 (score wallets) failed: %w", err)
	}
	o.log("  Scored %d wallets", len(scores))

	return result, nil
}

func (o *Orchestrator) persistFeatures(ctx context.Context, byWallet map[string]*domain.WalletFeatures) error {
	if len(byWallet) == 0 {
		return nil
	}
	return o.featureStore.InsertBulk(ctx, sortedFeatures(byWallet))
}

func (o *Orchestrator) persistScores(ctx context.Context, byWallet map[string]*domain.WalletScore) error {
	if len(byWallet) == 0 {
		return nil
	}
	return o.scoreStore.InsertBulk(ctx, sortedScores(byWallet))
}

// sortedFeatures orders vectors by wallet for deterministic inserts.
func sortedFeatures(byWallet map[string]*domain.WalletFeatures) []*domain.WalletFeatures {
	out := make([]*domain.WalletFeatures, 0, len(byWallet))
	for _, f := range byWallet {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WalletAddress < out[j].WalletAddress
	})
	return out
}

func sortedScores(byWallet map[string]*domain.WalletScore) []*domain.WalletScore {
	out := make([]*domain.WalletScore, 0, len(byWallet))
	for _, sc := range byWallet {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WalletAddress < out[j].WalletAddress
	})
	return out
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		log.Printf(format, args...)
	}
}
