package reporting

import "time"

// Report summarizes one scoring run.
type Report struct {
	// Metadata
	GeneratedAt      time.Time
	WalletCount      int
	TransactionCount int64

	// Credit score distribution
	ScoreMin    int
	ScoreMax    int
	ScoreMean   float64
	ScoreMedian float64

	// Histogram holds wallet counts for ten equal-width credit-score bins
	// spanning [0, 1000]; the closed upper bound falls into the last bin.
	Histogram [NumHistogramBins]int

	// Rows sorted by wallet address.
	Rows []ScoreRow
}

// ScoreRow is one wallet's line in the score table.
type ScoreRow struct {
	WalletAddress string
	RawScore      float64
	CreditScore   int
}
