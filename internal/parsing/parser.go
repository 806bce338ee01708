// Package parsing converts raw transaction records into normalized
// transactions. Parsing never fails: malformed numeric fields degrade to a
// zero USD value so one bad record cannot abort the batch.
package parsing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"aave-credit-scorer/internal/domain"
)

// ParseRecord converts one raw record into a normalized transaction.
// The wallet address is taken as-is, the action label is lowercased
// (defaulting to "unknown" when absent), and the USD value comes from
// AmountUSD with its zero-degradation fallback.
func ParseRecord(rec domain.RawTransactionRecord) *domain.Transaction {
	action := strings.ToLower(rec.Action)
	if action == "" {
		action = domain.ActionUnknown
	}

	usd, _ := AmountUSD(rec.ActionData)

	return &domain.Transaction{
		WalletAddress: rec.UserWallet,
		Timestamp:     rec.Timestamp,
		Action:        action,
		AmountUSD:     usd,
	}
}

// ParseAll normalizes a full batch, preserving input order and cardinality:
// N records in, N transactions out.
func ParseAll(records []domain.RawTransactionRecord) []*domain.Transaction {
	txs := make([]*domain.Transaction, len(records))
	for i, rec := range records {
		txs[i] = ParseRecord(rec)
	}
	return txs
}

// AmountUSD computes the USD value of a record as amount × price, multiplied
// at arbitrary precision before the final float conversion to avoid drift on
// large base-unit amounts.
//
// The bool reports whether the value was computed cleanly. Any fallback
// (malformed amount, missing or malformed price, negative product) returns
// (0, false). A missing amount with a valid price is a clean zero: the
// record carries no value but nothing was malformed.
func AmountUSD(data domain.RawActionData) (float64, bool) {
	amount := decimal.Zero
	if data.Amount != nil {
		var err error
		amount, err = decimal.NewFromString(*data.Amount)
		if err != nil {
			return 0, false
		}
	}

	price, ok := parsePrice(data.AssetPriceUSD)
	if !ok {
		return 0, false
	}

	usd := amount.Mul(price).InexactFloat64()
	if usd < 0 {
		return 0, false
	}
	return usd, true
}

// parsePrice extracts the USD unit price. The field is either a decimal
// string, a bare JSON number, or an object wrapping a decimal string under
// "$numberDecimal".
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, false
	}

	switch raw[0] {
	case '{':
		var wrapped struct {
			NumberDecimal string `json:"$numberDecimal"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.NumberDecimal == "" {
			return decimal.Zero, false
		}
		return parseDecimalString(wrapped.NumberDecimal)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
		return parseDecimalString(s)
	default:
		// bare JSON number
		return parseDecimalString(string(raw))
	}
}

func parseDecimalString(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
