// Package scoring combines wallet feature vectors into bounded credit
// scores: a deterministic linear heuristic per wallet, then a population-wide
// min-max rescale into [0, 1000].
package scoring

import (
	"math"

	"aave-credit-scorer/internal/domain"
)

// Heuristic weights. Longevity and volume raise the score (volume
// logarithmically, so size has diminishing returns), strong repayment raises
// it with a cap so extreme ratios cannot dominate, each liquidation imposes a
// large fixed penalty, and leverage is penalized up to a 2x cap.
const (
	baseScore          = 500.0
	agePointsPerDay    = 0.1
	volumeWeight       = 5.0
	repaymentWeight    = 100.0
	repaymentBonusCap  = 1.0
	liquidationPenalty = 250.0
	ltvWeight          = 150.0
	ltvCap             = 2.0
)

// RawScore computes the unbounded heuristic score for one wallet:
//
//	raw = 500
//	    + account_age_days * 0.1
//	    + ln(1 + sum_deposit + sum_borrow) * 5
//	    + min(repayment_ratio - 1, 1) * 100
//	    - liquidation_count * 250
//	    - min(ltv_proxy, 2) * 150
func RawScore(f *domain.WalletFeatures) float64 {
	volume := f.SumUSD(domain.ActionDeposit) + f.SumUSD(domain.ActionBorrow)

	raw := baseScore
	raw += float64(f.AccountAgeDays) * agePointsPerDay
	raw += math.Log1p(volume) * volumeWeight
	raw += math.Min(f.RepaymentRatio-1, repaymentBonusCap) * repaymentWeight
	raw -= float64(f.LiquidationCount) * liquidationPenalty
	raw -= math.Min(f.LTVProxy, ltvCap) * ltvWeight
	return raw
}

// Score computes raw scores for every wallet and rescales them across the
// whole population into the closed integer range [0, 1000]. The minimum raw
// score maps to 0, the maximum to 1000, and equal raw scores map to equal
// credit scores. A degenerate population where every wallet has the same raw
// score rescales to 0 for all. An empty population yields an empty mapping.
func Score(featuresByWallet map[string]*domain.WalletFeatures) map[string]*domain.WalletScore {
	scores := make(map[string]*domain.WalletScore, len(featuresByWallet))
	if len(featuresByWallet) == 0 {
		return scores
	}

	minRaw := math.Inf(1)
	maxRaw := math.Inf(-1)
	for wallet, f := range featuresByWallet {
		raw := RawScore(f)
		scores[wallet] = &domain.WalletScore{WalletAddress: wallet, RawScore: raw}
		if raw < minRaw {
			minRaw = raw
		}
		if raw > maxRaw {
			maxRaw = raw
		}
	}

	span := maxRaw - minRaw
	for _, sc := range scores {
		if span == 0 {
			// Every wallet scored identically; collapse to the range floor
			// rather than divide by zero.
			sc.CreditScore = domain.CreditScoreMin
			continue
		}
		scaled := (sc.RawScore - minRaw) / span * float64(domain.CreditScoreMax)
		sc.CreditScore = int(math.Round(scaled))
	}

	return scores
}
