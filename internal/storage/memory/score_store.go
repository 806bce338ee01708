package memory

import (
	"context"
	"sort"
	"sync"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage"
)

// ScoreStore is an in-memory implementation of storage.ScoreStore.
type ScoreStore struct {
	mu   sync.RWMutex
	data map[string]*domain.WalletScore // keyed by wallet address
}

// NewScoreStore creates a new in-memory score store.
func NewScoreStore() *ScoreStore {
	return &ScoreStore{
		data: make(map[string]*domain.WalletScore),
	}
}

// Compile-time interface check.
var _ storage.ScoreStore = (*ScoreStore)(nil)

// InsertBulk adds scores atomically. Fails entire batch on any duplicate.
func (s *ScoreStore) InsertBulk(_ context.Context, scores []*domain.WalletScore) error {
	if len(scores) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(scores))
	for _, sc := range scores {
		if sc == nil || sc.WalletAddress == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[sc.WalletAddress]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[sc.WalletAddress]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[sc.WalletAddress] = struct{}{}
	}

	for _, sc := range scores {
		cp := *sc
		s.data[sc.WalletAddress] = &cp
	}
	return nil
}

// GetByWallet retrieves the score for a wallet. Returns ErrNotFound if absent.
func (s *ScoreStore) GetByWallet(_ context.Context, wallet string) (*domain.WalletScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, exists := s.data[wallet]
	if !exists {
		return nil, storage.ErrNotFound
	}
	cp := *sc
	return &cp, nil
}

// GetAll retrieves all scores, ordered by wallet ASC.
func (s *ScoreStore) GetAll(_ context.Context) ([]*domain.WalletScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.WalletScore, 0, len(s.data))
	for _, sc := range s.data {
		cp := *sc
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].WalletAddress < result[j].WalletAddress
	})

	return result, nil
}
