package domain

// WalletScore is the scoring output for one wallet.
// Corresponds to wallet_scores table in PostgreSQL.
type WalletScore struct {
	WalletAddress string
	RawScore      float64 // unbounded heuristic value before rescaling
	CreditScore   int     // population min-max rescale of RawScore into [0, 1000]
}

// Credit score output range bounds.
const (
	CreditScoreMin = 0
	CreditScoreMax = 1000
)
