package reporting

import (
	"fmt"
	"strings"
)

// RenderScoresCSV renders the wallet score table as CSV string, one row per
// wallet, sorted by wallet address.
func RenderScoresCSV(rows []ScoreRow) string {
	var sb strings.Builder

	sb.WriteString("wallet_address,credit_score\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s,%d\n", row.WalletAddress, row.CreditScore))
	}

	return sb.String()
}
