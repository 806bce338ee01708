package memory

import (
	"context"
	"sort"
	"sync"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage"
)

// FeatureStore is an in-memory implementation of storage.FeatureStore.
type FeatureStore struct {
	mu   sync.RWMutex
	data map[string]*domain.WalletFeatures // keyed by wallet address
}

// NewFeatureStore creates a new in-memory feature store.
func NewFeatureStore() *FeatureStore {
	return &FeatureStore{
		data: make(map[string]*domain.WalletFeatures),
	}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// InsertBulk adds feature vectors atomically. Fails entire batch on any duplicate.
func (s *FeatureStore) InsertBulk(_ context.Context, features []*domain.WalletFeatures) error {
	if len(features) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: validate and detect duplicates (existing + intra-batch)
	batchKeys := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f == nil || f.WalletAddress == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[f.WalletAddress]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[f.WalletAddress]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[f.WalletAddress] = struct{}{}
	}

	// Second pass: insert all
	for _, f := range features {
		s.data[f.WalletAddress] = copyFeatures(f)
	}
	return nil
}

// GetByWallet retrieves features for a wallet. Returns ErrNotFound if absent.
func (s *FeatureStore) GetByWallet(_ context.Context, wallet string) (*domain.WalletFeatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, exists := s.data[wallet]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyFeatures(f), nil
}

// GetAll retrieves all feature vectors, ordered by wallet ASC.
func (s *FeatureStore) GetAll(_ context.Context) ([]*domain.WalletFeatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.WalletFeatures, 0, len(s.data))
	for _, f := range s.data {
		result = append(result, copyFeatures(f))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].WalletAddress < result[j].WalletAddress
	})

	return result, nil
}

// copyFeatures deep-copies a feature vector; the Actions map must not be
// shared with callers.
func copyFeatures(f *domain.WalletFeatures) *domain.WalletFeatures {
	cp := *f
	cp.Actions = make(map[string]domain.ActionStat, len(f.Actions))
	for k, v := range f.Actions {
		cp.Actions[k] = v
	}
	return &cp
}
