// Package ingestion loads the raw transaction batch and fills the
// transaction store with normalized transactions.
package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"aave-credit-scorer/internal/domain"
)

// LoadRecords reads and decodes the raw transaction batch from path.
// A missing or unreadable input file is the only run-level failure in the
// whole pipeline; every later stage recovers locally.
func LoadRecords(path string) ([]domain.RawTransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// DecodeRecords decodes a JSON array of raw transaction records.
func DecodeRecords(r io.Reader) ([]domain.RawTransactionRecord, error) {
	var records []domain.RawTransactionRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode transaction batch: %w", err)
	}
	return records, nil
}
