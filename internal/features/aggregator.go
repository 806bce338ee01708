// Package features derives per-wallet behavioral feature vectors from the
// normalized transaction batch.
package features

import "aave-credit-scorer/internal/domain"

const secondsPerDay = 86400

// Aggregate groups transactions by wallet and computes one feature vector
// per wallet.
//
// Formulas per wallet:
//   - first_tx / last_tx = MIN / MAX timestamp
//   - account_age_days = (last_tx - first_tx) in whole days, truncated
//   - per-action (sum, count) pivot over AmountUSD; every wallet carries an
//     explicit (0, 0) cell for every action observed anywhere in the batch
//   - liquidation_count = count of liquidationcall actions
//   - repayment_ratio = sum_repay / (sum_borrow + 1)
//   - ltv_proxy = sum_borrow / (sum_deposit + 1)
//
// The +1 denominators make both ratios finite for any input and dampen them
// for wallets with near-zero borrow/deposit activity. Aggregation is
// commutative over input order. An empty batch yields an empty map.
func Aggregate(txs []*domain.Transaction) map[string]*domain.WalletFeatures {
	// Global action set: the pivot is rectangular across all wallets.
	actions := make(map[string]struct{})
	for _, tx := range txs {
		actions[tx.Action] = struct{}{}
	}

	byWallet := make(map[string]*domain.WalletFeatures)
	for _, tx := range txs {
		f, ok := byWallet[tx.WalletAddress]
		if !ok {
			f = &domain.WalletFeatures{
				WalletAddress: tx.WalletAddress,
				FirstTxTime:   tx.Timestamp,
				LastTxTime:    tx.Timestamp,
				Actions:       make(map[string]domain.ActionStat, len(actions)),
			}
			byWallet[tx.WalletAddress] = f
		}

		if tx.Timestamp < f.FirstTxTime {
			f.FirstTxTime = tx.Timestamp
		}
		if tx.Timestamp > f.LastTxTime {
			f.LastTxTime = tx.Timestamp
		}

		stat := f.Actions[tx.Action]
		stat.SumUSD += tx.AmountUSD
		stat.Count++
		f.Actions[tx.Action] = stat
	}

	for _, f := range byWallet {
		// Missing (wallet, action) combinations fill as explicit zeros.
		for action := range actions {
			if _, ok := f.Actions[action]; !ok {
				f.Actions[action] = domain.ActionStat{}
			}
		}

		f.AccountAgeDays = (f.LastTxTime - f.FirstTxTime) / secondsPerDay
		f.LiquidationCount = f.Actions[domain.ActionLiquidationCall].Count

		borrowed := f.Actions[domain.ActionBorrow].SumUSD
		f.RepaymentRatio = f.Actions[domain.ActionRepay].SumUSD / (borrowed + 1)
		f.LTVProxy = borrowed / (f.Actions[domain.ActionDeposit].SumUSD + 1)
	}

	return byWallet
}
