package domain

import "encoding/json"

// RawTransactionRecord is one lending-protocol transaction as it appears in
// the input batch file. Field encodings are heterogeneous across exports, so
// numeric values stay untyped here and are normalized by the parser.
type RawTransactionRecord struct {
	UserWallet string        `json:"userWallet"`
	Timestamp  int64         `json:"timestamp"` // Unix seconds
	Action     string        `json:"action"`
	ActionData RawActionData `json:"actionData"`
}

// RawActionData carries the per-action payload. Amount is a decimal string in
// token base units. AssetPriceUSD is either a decimal string or an object
// wrapping one under "$numberDecimal" (Mongo export artifact), hence the
// deferred decode.
type RawActionData struct {
	Amount        *string         `json:"amount"`
	AssetPriceUSD json.RawMessage `json:"assetPriceUSD"`
}
