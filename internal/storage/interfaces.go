package storage

import (
	"context"

	"aave-credit-scorer/internal/domain"
)

// TransactionStore provides access to transactions storage.
// The store is append-only and ordered: GetAll returns transactions in
// insertion order, preserving the cardinality of the input batch.
type TransactionStore interface {
	// InsertBulk appends transactions in order. Rejects nil entries with ErrInvalidInput.
	InsertBulk(ctx context.Context, txs []*domain.Transaction) error

	// GetAll retrieves all transactions in insertion order.
	GetAll(ctx context.Context) ([]*domain.Transaction, error)

	// GetByWallet retrieves all transactions for a wallet, ordered by timestamp ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.Transaction, error)

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int64, error)
}

// FeatureStore provides access to wallet_features storage, keyed by wallet.
type FeatureStore interface {
	// InsertBulk adds feature vectors atomically. Returns ErrDuplicateKey if
	// any wallet already has features (intra-batch duplicates included).
	InsertBulk(ctx context.Context, features []*domain.WalletFeatures) error

	// GetByWallet retrieves features for a wallet. Returns ErrNotFound if absent.
	GetByWallet(ctx context.Context, wallet string) (*domain.WalletFeatures, error)

	// GetAll retrieves all feature vectors, ordered by wallet ASC.
	GetAll(ctx context.Context) ([]*domain.WalletFeatures, error)
}

// ScoreStore provides access to wallet_scores storage, keyed by wallet.
type ScoreStore interface {
	// InsertBulk adds scores atomically. Returns ErrDuplicateKey if any
	// wallet is already scored (intra-batch duplicates included).
	InsertBulk(ctx context.Context, scores []*domain.WalletScore) error

	// GetByWallet retrieves the score for a wallet. Returns ErrNotFound if absent.
	GetByWallet(ctx context.Context, wallet string) (*domain.WalletScore, error)

	// GetAll retrieves all scores, ordered by wallet ASC.
	GetAll(ctx context.Context) ([]*domain.WalletScore, error)
}
