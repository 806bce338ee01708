package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Wallet Credit Score Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Data Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Transactions | %d |\n", r.TransactionCount))
	sb.WriteString(fmt.Sprintf("| Wallets | %d |\n", r.WalletCount))
	sb.WriteString(fmt.Sprintf("| Score Min | %d |\n", r.ScoreMin))
	sb.WriteString(fmt.Sprintf("| Score Max | %d |\n", r.ScoreMax))
	sb.WriteString(fmt.Sprintf("| Score Mean | %.2f |\n", r.ScoreMean))
	sb.WriteString(fmt.Sprintf("| Score Median | %.1f |\n", r.ScoreMedian))
	sb.WriteString("\n")

	// Distribution
	sb.WriteString("## Score Distribution\n\n")
	if r.WalletCount > 0 {
		sb.WriteString("| Range | Wallets |\n")
		sb.WriteString("|-------|--------|\n")
		for i, count := range r.Histogram {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", BinLabel(i), count))
		}
	} else {
		sb.WriteString("No wallets scored.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
