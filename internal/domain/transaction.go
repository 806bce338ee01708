package domain

// Transaction is a normalized lending-protocol transaction.
// Corresponds to transactions table in PostgreSQL.
// Every raw record yields exactly one Transaction; malformed numeric fields
// degrade to AmountUSD = 0 rather than dropping the record.
type Transaction struct {
	WalletAddress string  // opaque wallet identifier, taken from input as-is
	Timestamp     int64   // Unix timestamp in seconds
	Action        string  // lowercased action label, "unknown" if absent
	AmountUSD     float64 // token amount × unit price, never negative
}

// Action labels with scoring significance. Unknown labels pass through
// uncategorized and still participate in the per-action pivot.
const (
	ActionDeposit         = "deposit"
	ActionBorrow          = "borrow"
	ActionRepay           = "repay"
	ActionRedeem          = "redeemunderlying"
	ActionLiquidationCall = "liquidationcall"
	ActionUnknown         = "unknown"
)
