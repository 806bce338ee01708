package memory

import (
	"context"
	"sort"
	"sync"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
// Transactions are kept in insertion order.
type TransactionStore struct {
	mu   sync.RWMutex
	data []*domain.Transaction
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// InsertBulk appends transactions in order. Rejects nil entries.
func (s *TransactionStore) InsertBulk(_ context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	for _, tx := range txs {
		if tx == nil {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		cp := *tx
		s.data = append(s.data, &cp)
	}
	return nil
}

// GetAll retrieves all transactions in insertion order.
func (s *TransactionStore) GetAll(_ context.Context) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Transaction, len(s.data))
	for i, tx := range s.data {
		cp := *tx
		result[i] = &cp
	}
	return result, nil
}

// GetByWallet retrieves all transactions for a wallet, ordered by timestamp ASC.
func (s *TransactionStore) GetByWallet(_ context.Context, wallet string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, tx := range s.data {
		if tx.WalletAddress == wallet {
			cp := *tx
			result = append(result, &cp)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp < result[j].Timestamp
	})

	return result, nil
}

// Count returns the number of stored transactions.
func (s *TransactionStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.data)), nil
}
