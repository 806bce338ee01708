package scoring

import (
	"math"
	"testing"

	"aave-credit-scorer/internal/domain"
)

// feat builds a feature vector with ratios derived the same way the
// aggregator derives them.
func feat(ageDays int64, deposit, borrow, repay float64, liquidations int64) *domain.WalletFeatures {
	return &domain.WalletFeatures{
		AccountAgeDays: ageDays,
		Actions: map[string]domain.ActionStat{
			domain.ActionDeposit: {SumUSD: deposit},
			domain.ActionBorrow:  {SumUSD: borrow},
			domain.ActionRepay:   {SumUSD: repay},
		},
		LiquidationCount: liquidations,
		RepaymentRatio:   repay / (borrow + 1),
		LTVProxy:         borrow / (deposit + 1),
	}
}

func TestRawScore_BaseCase(t *testing.T) {
	// No activity at all: base 500, repayment term min(0-1, 1)*100 = -100.
	raw := RawScore(feat(0, 0, 0, 0, 0))
	if math.Abs(raw-400.0) > 1e-9 {
		t.Errorf("expected 400, got %f", raw)
	}
}

func TestRawScore_AccountAgeTerm(t *testing.T) {
	young := RawScore(feat(0, 0, 0, 0, 0))
	old := RawScore(feat(100, 0, 0, 0, 0))
	if math.Abs((old-young)-10.0) > 1e-9 {
		t.Errorf("expected 100 days to add exactly 10 points, got %f", old-young)
	}
}

func TestRawScore_VolumeTermIsLogarithmic(t *testing.T) {
	// Deposit-only input keeps ltv_proxy at 0, so the delta over the base
	// case is the volume term alone.
	base := RawScore(feat(0, 0, 0, 0, 0))
	withVolume := RawScore(feat(0, 1000, 0, 0, 0))

	want := math.Log1p(1000) * 5
	if math.Abs((withVolume-base)-want) > 1e-9 {
		t.Errorf("expected volume term %f, got %f", want, withVolume-base)
	}
}

func TestRawScore_BorrowAddsVolumeAndLeverageTerms(t *testing.T) {
	// Borrow volume enters the logarithmic term but also raises ltv_proxy,
	// so the two terms move together.
	base := RawScore(feat(0, 0, 0, 0, 0))
	withBorrow := RawScore(feat(0, 1000, 500, 0, 0))

	want := math.Log1p(1500)*5 - (500.0/1001.0)*150
	if math.Abs((withBorrow-base)-want) > 1e-9 {
		t.Errorf("expected combined volume and ltv delta %f, got %f", want, withBorrow-base)
	}
}

func TestRawScore_RepaymentBonusCapped(t *testing.T) {
	// Extreme repayment ratio must not add more than 100 points over the
	// neutral ratio of exactly 1.
	neutral := RawScore(&domain.WalletFeatures{Actions: map[string]domain.ActionStat{}, RepaymentRatio: 1})
	extreme := RawScore(&domain.WalletFeatures{Actions: map[string]domain.ActionStat{}, RepaymentRatio: 1e9})

	if math.Abs((extreme-neutral)-100.0) > 1e-9 {
		t.Errorf("expected capped repayment bonus of 100, got %f", extreme-neutral)
	}
}

func TestRawScore_LiquidationMonotonicity(t *testing.T) {
	// One additional liquidation decreases the raw score by exactly 250,
	// all other features held fixed.
	for n := int64(0); n < 4; n++ {
		lo := RawScore(feat(30, 5000, 1000, 800, n))
		hi := RawScore(feat(30, 5000, 1000, 800, n+1))
		if math.Abs((lo-hi)-250.0) > 1e-9 {
			t.Errorf("liquidations %d→%d: expected drop of 250, got %f", n, n+1, lo-hi)
		}
	}
}

func TestRawScore_LTVPenaltyCapped(t *testing.T) {
	capped := RawScore(&domain.WalletFeatures{Actions: map[string]domain.ActionStat{}, LTVProxy: 2})
	beyond := RawScore(&domain.WalletFeatures{Actions: map[string]domain.ActionStat{}, LTVProxy: 50})

	if capped != beyond {
		t.Errorf("expected ltv penalty capped at 2x: %f vs %f", capped, beyond)
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	features := map[string]*domain.WalletFeatures{
		"0xa": feat(100, 10000, 0, 0, 0),
		"0xb": feat(5, 100, 400, 100, 1),
		"0xc": feat(50, 2000, 1000, 1200, 0),
	}

	scores := Score(features)

	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}

	sawMin, sawMax := false, false
	for wallet, sc := range scores {
		if sc.CreditScore < domain.CreditScoreMin || sc.CreditScore > domain.CreditScoreMax {
			t.Errorf("wallet %s: credit score %d out of range", wallet, sc.CreditScore)
		}
		if sc.CreditScore == domain.CreditScoreMin {
			sawMin = true
		}
		if sc.CreditScore == domain.CreditScoreMax {
			sawMax = true
		}
	}
	if !sawMin {
		t.Error("expected the minimum raw score to rescale to exactly 0")
	}
	if !sawMax {
		t.Error("expected the maximum raw score to rescale to exactly 1000")
	}
}

func TestScore_TiesReceiveIdenticalCreditScore(t *testing.T) {
	features := map[string]*domain.WalletFeatures{
		"0xa": feat(10, 1000, 0, 0, 0),
		"0xb": feat(10, 1000, 0, 0, 0), // identical to 0xa
		"0xc": feat(0, 0, 0, 0, 3),
	}

	scores := Score(features)

	if scores["0xa"].CreditScore != scores["0xb"].CreditScore {
		t.Errorf("tied raw scores rescaled differently: %d vs %d",
			scores["0xa"].CreditScore, scores["0xb"].CreditScore)
	}
}

func TestScore_DegeneratePopulationCollapsesToZero(t *testing.T) {
	features := map[string]*domain.WalletFeatures{
		"0xa": feat(10, 500, 0, 0, 0),
		"0xb": feat(10, 500, 0, 0, 0),
	}

	scores := Score(features)

	for wallet, sc := range scores {
		if sc.CreditScore != 0 {
			t.Errorf("wallet %s: expected 0 for all-equal population, got %d", wallet, sc.CreditScore)
		}
	}
}

func TestScore_EmptyPopulation(t *testing.T) {
	scores := Score(nil)
	if len(scores) != 0 {
		t.Errorf("expected empty output, got %d scores", len(scores))
	}
}

func TestScore_Deterministic(t *testing.T) {
	features := map[string]*domain.WalletFeatures{
		"0xa": feat(100, 10000, 3000, 2500, 0),
		"0xb": feat(1, 0, 1000, 0, 2),
		"0xc": feat(30, 500, 0, 0, 0),
	}

	first := Score(features)
	second := Score(features)

	for wallet := range first {
		if first[wallet].CreditScore != second[wallet].CreditScore ||
			first[wallet].RawScore != second[wallet].RawScore {
			t.Errorf("wallet %s: scoring is not a pure function of input", wallet)
		}
	}
}
