package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage/memory"
)

func fixedClock() func() time.Time {
	fixed := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func seededStores(t *testing.T) (*memory.TransactionStore, *memory.ScoreStore) {
	t.Helper()
	ctx := context.Background()

	txStore := memory.NewTransactionStore()
	require.NoError(t, txStore.InsertBulk(ctx, []*domain.Transaction{
		{WalletAddress: "0xa", Timestamp: 1, Action: "deposit", AmountUSD: 100},
		{WalletAddress: "0xb", Timestamp: 2, Action: "borrow", AmountUSD: 200},
		{WalletAddress: "0xc", Timestamp: 3, Action: "repay", AmountUSD: 50},
	}))

	scoreStore := memory.NewScoreStore()
	require.NoError(t, scoreStore.InsertBulk(ctx, []*domain.WalletScore{
		{WalletAddress: "0xc", RawScore: 700, CreditScore: 1000},
		{WalletAddress: "0xa", RawScore: 400, CreditScore: 0},
		{WalletAddress: "0xb", RawScore: 550, CreditScore: 500},
	}))

	return txStore, scoreStore
}

func TestGenerate(t *testing.T) {
	txStore, scoreStore := seededStores(t)
	gen := NewGenerator(txStore, scoreStore).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.WalletCount)
	assert.Equal(t, int64(3), report.TransactionCount)
	assert.Equal(t, 0, report.ScoreMin)
	assert.Equal(t, 1000, report.ScoreMax)
	assert.Equal(t, 500.0, report.ScoreMean)
	assert.Equal(t, 500.0, report.ScoreMedian)

	// Rows sorted by wallet address
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "0xa", report.Rows[0].WalletAddress)
	assert.Equal(t, "0xc", report.Rows[2].WalletAddress)

	// Injectable clock
	assert.Equal(t, fixedClock()(), report.GeneratedAt)
}

func TestGenerate_EmptyScoreTable(t *testing.T) {
	gen := NewGenerator(memory.NewTransactionStore(), memory.NewScoreStore()).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.WalletCount)
	assert.Empty(t, report.Rows)
}

func TestHistogramBins(t *testing.T) {
	rows := []ScoreRow{
		{CreditScore: 0},    // bin 0
		{CreditScore: 99},   // bin 0
		{CreditScore: 100},  // bin 1
		{CreditScore: 555},  // bin 5
		{CreditScore: 999},  // bin 9
		{CreditScore: 1000}, // closed upper bound stays in bin 9
	}

	bins := HistogramBins(rows)

	assert.Equal(t, 2, bins[0])
	assert.Equal(t, 1, bins[1])
	assert.Equal(t, 1, bins[5])
	assert.Equal(t, 2, bins[9])

	total := 0
	for _, c := range bins {
		total += c
	}
	assert.Equal(t, len(rows), total)
}

func TestRenderScoresCSV(t *testing.T) {
	rows := []ScoreRow{
		{WalletAddress: "0xa", RawScore: 400.5, CreditScore: 0},
		{WalletAddress: "0xb", RawScore: 700.1, CreditScore: 1000},
	}

	csv := RenderScoresCSV(rows)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "wallet_address,credit_score", lines[0])
	assert.Equal(t, "0xa,0", lines[1])
	assert.Equal(t, "0xb,1000", lines[2])
}

func TestRenderMarkdown(t *testing.T) {
	txStore, scoreStore := seededStores(t)
	gen := NewGenerator(txStore, scoreStore).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)

	md := RenderMarkdown(report)

	assert.Contains(t, md, "# Wallet Credit Score Report")
	assert.Contains(t, md, "| Wallets | 3 |")
	assert.Contains(t, md, "| Score Max | 1000 |")
	assert.Contains(t, md, "| 900-1000 |")
}

func TestRenderMarkdown_EmptyPopulation(t *testing.T) {
	report := &Report{GeneratedAt: fixedClock()()}
	md := RenderMarkdown(report)
	assert.Contains(t, md, "No wallets scored.")
}
