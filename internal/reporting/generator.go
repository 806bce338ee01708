package reporting

import (
	"context"
	"sort"
	"time"

	"aave-credit-scorer/internal/storage"
)

// Generator produces reports from stored scores.
type Generator struct {
	transactionStore storage.TransactionStore
	scoreStore       storage.ScoreStore
	now              func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(txStore storage.TransactionStore, scoreStore storage.ScoreStore) *Generator {
	return &Generator{
		transactionStore: txStore,
		scoreStore:       scoreStore,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report for the current score table.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	scores, err := g.scoreStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	txCount, err := g.transactionStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt:      g.now(),
		WalletCount:      len(scores),
		TransactionCount: txCount,
	}

	if len(scores) == 0 {
		return report, nil
	}

	rows := make([]ScoreRow, len(scores))
	for i, sc := range scores {
		rows[i] = ScoreRow{
			WalletAddress: sc.WalletAddress,
			RawScore:      sc.RawScore,
			CreditScore:   sc.CreditScore,
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WalletAddress < rows[j].WalletAddress
	})
	report.Rows = rows
	report.Histogram = HistogramBins(rows)

	report.ScoreMin = rows[0].CreditScore
	report.ScoreMax = rows[0].CreditScore
	sum := 0
	for _, row := range rows {
		if row.CreditScore < report.ScoreMin {
			report.ScoreMin = row.CreditScore
		}
		if row.CreditScore > report.ScoreMax {
			report.ScoreMax = row.CreditScore
		}
		sum += row.CreditScore
	}
	report.ScoreMean = float64(sum) / float64(len(rows))
	report.ScoreMedian = medianCreditScore(rows)

	return report, nil
}

// medianCreditScore computes the median over a copy sorted by score.
func medianCreditScore(rows []ScoreRow) float64 {
	sorted := make([]int, len(rows))
	for i, row := range rows {
		sorted[i] = row.CreditScore
	}
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
