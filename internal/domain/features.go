package domain

// ActionStat is the (sum, count) cell of the per-action pivot.
type ActionStat struct {
	SumUSD float64 // total AmountUSD across the wallet's transactions of this action
	Count  int64   // number of such transactions
}

// WalletFeatures is the behavioral feature vector for one wallet.
// Corresponds to wallet_features table in ClickHouse.
// Built once from the full transaction batch, read-only afterward.
type WalletFeatures struct {
	WalletAddress  string
	FirstTxTime    int64 // min transaction timestamp (Unix seconds)
	LastTxTime     int64 // max transaction timestamp (Unix seconds)
	AccountAgeDays int64 // whole days between first and last tx, truncated

	// Actions holds one ActionStat per action label observed anywhere in the
	// batch. Wallets that never performed an action still carry an explicit
	// zero entry, so lookups never depend on key presence.
	Actions map[string]ActionStat

	LiquidationCount int64   // count of liquidationcall actions
	RepaymentRatio   float64 // sum_repay / (sum_borrow + 1)
	LTVProxy         float64 // sum_borrow / (sum_deposit + 1)
}

// ActionStat returns the pivot cell for the given action, zero-valued when
// the action was never observed for this wallet.
func (f *WalletFeatures) ActionStat(action string) ActionStat {
	return f.Actions[action]
}

// SumUSD returns the total USD volume of the given action for this wallet.
func (f *WalletFeatures) SumUSD(action string) float64 {
	return f.Actions[action].SumUSD
}
