package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage"
)

// ScoreStore implements storage.ScoreStore using PostgreSQL.
type ScoreStore struct {
	pool *Pool
}

// NewScoreStore creates a new ScoreStore.
func NewScoreStore(pool *Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ScoreStore = (*ScoreStore)(nil)

// InsertBulk adds multiple scores atomically. Fails entire batch on any duplicate.
func (s *ScoreStore) InsertBulk(ctx context.Context, scores []*domain.WalletScore) error {
	if len(scores) == 0 {
		return nil
	}

	// Intra-batch duplicates would otherwise surface as a unique violation
	// halfway through the transaction.
	seen := make(map[string]struct{}, len(scores))
	for _, sc := range scores {
		if sc == nil {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[sc.WalletAddress]; exists {
			return storage.ErrDuplicateKey
		}
		seen[sc.WalletAddress] = struct{}{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO wallet_scores (wallet_address, raw_score, credit_score)
		VALUES ($1, $2, $3)
	`

	for _, sc := range scores {
		_, err := tx.Exec(ctx, query,
			sc.WalletAddress,
			sc.RawScore,
			sc.CreditScore,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert wallet score in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByWallet retrieves the score for a wallet. Returns ErrNotFound if absent.
func (s *ScoreStore) GetByWallet(ctx context.Context, wallet string) (*domain.WalletScore, error) {
	query := `
		SELECT wallet_address, raw_score, credit_score
		FROM wallet_scores
		WHERE wallet_address = $1
	`

	var sc domain.WalletScore
	err := s.pool.QueryRow(ctx, query, wallet).Scan(
		&sc.WalletAddress,
		&sc.RawScore,
		&sc.CreditScore,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet score: %w", err)
	}

	return &sc, nil
}

// GetAll retrieves all scores, ordered by wallet ASC.
func (s *ScoreStore) GetAll(ctx context.Context) ([]*domain.WalletScore, error) {
	query := `
		SELECT wallet_address, raw_score, credit_score
		FROM wallet_scores
		ORDER BY wallet_address ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all wallet scores: %w", err)
	}
	defer rows.Close()

	return scanWalletScores(rows)
}

// scanWalletScores scans multiple rows into a slice of WalletScore.
func scanWalletScores(rows pgx.Rows) ([]*domain.WalletScore, error) {
	var scores []*domain.WalletScore

	for rows.Next() {
		var sc domain.WalletScore

		err := rows.Scan(
			&sc.WalletAddress,
			&sc.RawScore,
			&sc.CreditScore,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wallet score row: %w", err)
		}

		scores = append(scores, &sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet score rows: %w", err)
	}

	return scores, nil
}
