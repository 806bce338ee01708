package clickhouse

import (
	"context"
	"fmt"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage"
)

// FeatureStore implements storage.FeatureStore using ClickHouse. The per-action
// pivot is stored as a pair of Map columns keyed by action name.
type FeatureStore struct {
	conn *Conn
}

// NewFeatureStore creates a new FeatureStore.
func NewFeatureStore(conn *Conn) *FeatureStore {
	return &FeatureStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// InsertBulk adds multiple feature vectors. Fails entire batch on duplicate.
func (s *FeatureStore) InsertBulk(ctx context.Context, features []*domain.WalletFeatures) error {
	if len(features) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f == nil {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[f.WalletAddress]; exists {
			return storage.ErrDuplicateKey
		}
		seen[f.WalletAddress] = struct{}{}
	}

	// MergeTree doesn't enforce uniqueness, so check against existing rows
	for _, f := range features {
		exists, err := s.exists(ctx, f.WalletAddress)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO wallet_features (
			wallet_address, first_tx_time, last_tx_time, account_age_days,
			action_sum_usd, action_count,
			liquidation_count, repayment_ratio, ltv_proxy
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, f := range features {
		sums, counts := splitActionMaps(f.Actions)
		err = batch.Append(
			f.WalletAddress, f.FirstTxTime, f.LastTxTime, f.AccountAgeDays,
			sums, counts,
			uint64(f.LiquidationCount), f.RepaymentRatio, f.LTVProxy,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByWallet retrieves features for a wallet. Returns ErrNotFound if absent.
func (s *FeatureStore) GetByWallet(ctx context.Context, wallet string) (*domain.WalletFeatures, error) {
	query := `
		SELECT
			wallet_address, first_tx_time, last_tx_time, account_age_days,
			action_sum_usd, action_count,
			liquidation_count, repayment_ratio, ltv_proxy
		FROM wallet_features
		WHERE wallet_address = ?
	`

	rows, err := s.conn.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query by wallet: %w", err)
	}
	defer rows.Close()

	features, err := scanWalletFeatures(rows)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, storage.ErrNotFound
	}
	return features[0], nil
}

// GetAll retrieves all feature vectors, ordered by wallet ASC.
func (s *FeatureStore) GetAll(ctx context.Context) ([]*domain.WalletFeatures, error) {
	query := `
		SELECT
			wallet_address, first_tx_time, last_tx_time, account_age_days,
			action_sum_usd, action_count,
			liquidation_count, repayment_ratio, ltv_proxy
		FROM wallet_features
		ORDER BY wallet_address ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all wallet features: %w", err)
	}
	defer rows.Close()

	return scanWalletFeatures(rows)
}

// exists checks if features for the wallet are already stored.
func (s *FeatureStore) exists(ctx context.Context, wallet string) (bool, error) {
	query := `
		SELECT count(*) FROM wallet_features
		WHERE wallet_address = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, wallet).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// splitActionMaps splits the action pivot into the two Map column values.
func splitActionMaps(actions map[string]domain.ActionStat) (map[string]float64, map[string]uint64) {
	sums := make(map[string]float64, len(actions))
	counts := make(map[string]uint64, len(actions))
	for action, stat := range actions {
		sums[action] = stat.SumUSD
		counts[action] = uint64(stat.Count)
	}
	return sums, counts
}

// joinActionMaps rebuilds the action pivot from the two Map column values.
func joinActionMaps(sums map[string]float64, counts map[string]uint64) map[string]domain.ActionStat {
	actions := make(map[string]domain.ActionStat, len(sums))
	for action, sum := range sums {
		actions[action] = domain.ActionStat{
			SumUSD: sum,
			Count:  int64(counts[action]),
		}
	}
	return actions
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanWalletFeatures scans multiple rows into a slice of WalletFeatures.
func scanWalletFeatures(rows chRows) ([]*domain.WalletFeatures, error) {
	var features []*domain.WalletFeatures

	for rows.Next() {
		var f domain.WalletFeatures
		var sums map[string]float64
		var counts map[string]uint64
		var liquidationCount uint64

		err := rows.Scan(
			&f.WalletAddress, &f.FirstTxTime, &f.LastTxTime, &f.AccountAgeDays,
			&sums, &counts,
			&liquidationCount, &f.RepaymentRatio, &f.LTVProxy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wallet features row: %w", err)
		}

		f.Actions = joinActionMaps(sums, counts)
		f.LiquidationCount = int64(liquidationCount)

		features = append(features, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet features rows: %w", err)
	}

	return features, nil
}
