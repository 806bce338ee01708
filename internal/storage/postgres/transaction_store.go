package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"aave-credit-scorer/internal/domain"
	"aave-credit-scorer/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
// The bigserial primary key preserves insertion order across batches.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// InsertBulk appends transactions atomically in batch order.
func (s *TransactionStore) InsertBulk(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	for _, t := range txs {
		if t == nil {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (wallet_address, ts, action, amount_usd)
		VALUES ($1, $2, $3, $4)
	`

	for _, t := range txs {
		_, err := tx.Exec(ctx, query,
			t.WalletAddress,
			t.Timestamp,
			t.Action,
			t.AmountUSD,
		)
		if err != nil {
			return fmt.Errorf("insert transaction in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all transactions in insertion order.
func (s *TransactionStore) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT wallet_address, ts, action, amount_usd
		FROM transactions
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByWallet retrieves all transactions for a wallet, ordered by timestamp ASC.
func (s *TransactionStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.Transaction, error) {
	query := `
		SELECT wallet_address, ts, action, amount_usd
		FROM transactions
		WHERE wallet_address = $1
		ORDER BY ts ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("get transactions by wallet: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Count returns the number of stored transactions.
func (s *TransactionStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// scanTransactions scans multiple rows into a slice of Transaction.
func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction

	for rows.Next() {
		var t domain.Transaction

		err := rows.Scan(
			&t.WalletAddress,
			&t.Timestamp,
			&t.Action,
			&t.AmountUSD,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}

		txs = append(txs, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return txs, nil
}
