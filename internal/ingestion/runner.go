package ingestion

import (
	"context"
	"fmt"
	"log"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/parsing"
	"aave-credit-scorer/internal/storage"
)

// Runner normalizes a raw batch and fills the transaction store.
type Runner struct {
	store  storage.TransactionStore
	logger *log.Logger
}

// NewRunner creates a new ingestion runner.
func NewRunner(store storage.TransactionStore, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{store: store, logger: logger}
}

// RunResult contains counts from one ingestion run.
type RunResult struct {
	RecordsRead        int // raw records in the batch
	Normalized         int // transactions written, always equals RecordsRead
	ZeroValueFallbacks int // records whose USD value degraded to zero
}

// Run normalizes every record and bulk-inserts the result. Cardinality is
// preserved: malformed numeric fields degrade to a zero USD value and the
// record is kept.
func (r *Runner) Run(ctx context.Context, records []domain.RawTransactionRecord) (*RunResult, error) {
	result := &RunResult{RecordsRead: len(records)}

	txs := make([]*domain.Transaction, len(records))
	for i, rec := range records {
		if _, ok := parsing.AmountUSD(rec.ActionData); !ok {
			result.ZeroValueFallbacks++
		}
		txs[i] = parsing.ParseRecord(rec)
	}

	if err := r.store.InsertBulk(ctx, txs); err != nil {
		return nil, fmt.Errorf("insert transactions: %w", err)
	}
	result.Normalized = len(txs)

	r.logger.Printf("Ingested %d records (%d zero-value fallbacks)",
		result.RecordsRead, result.ZeroValueFallbacks)
	return result, nil
}
